package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_WritesOutputAndSummary(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	output := filepath.Join(dir, "out.csv")
	content := "Ticket ID,Customer Name,Email,Issue Description,Status,Created At\n" +
		"T-1,Ann,ann@example.com,I need a refund,Open,2024-03-08 12:00:00\n"
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	if err := run([]string{"-input", input, "-output", output, "-seed", "3"}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output not written: %v", err)
	}
	for _, want := range []string{"Processed 1 tickets", "Billing", "T-1"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run([]string{"-input", filepath.Join(dir, "nope.csv"), "-output", filepath.Join(dir, "out.csv")}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("run with missing input returned nil error")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "out.csv")); statErr == nil {
		t.Error("output written for failed run")
	}
}

func TestRun_BadFlag(t *testing.T) {
	if err := run([]string{"-nope"}, &bytes.Buffer{}); err == nil {
		t.Fatal("unknown flag accepted")
	}
}
