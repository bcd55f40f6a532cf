package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

func sampleTable() domain.Table {
	return domain.Table{
		{
			ID:                "T-1",
			CustomerName:      "Ann Lee",
			Email:             "ann@example.com",
			Description:       "Refund, \"urgent\"\nsecond line",
			Status:            domain.TicketStatusOpen,
			CreatedAt:         time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC),
			Category:          domain.CategoryBilling,
			DaysOpen:          2,
			PriorityScore:     7,
			Priority:          domain.TicketPriorityHigh,
			SuggestedResponse: "We've noted your billing query and are processing it with priority.",
		},
		{
			ID:                "T-2",
			CustomerName:      "Bob",
			Email:             "bob@example.com",
			Description:       "hello",
			Status:            domain.TicketStatusClosed,
			CreatedAt:         time.Date(2024, 3, 9, 6, 30, 0, 0, time.UTC),
			Category:          domain.CategoryGeneral,
			DaysOpen:          1.2291666666666667,
			PriorityScore:     0.6145833333333334,
			Priority:          domain.TicketPriorityLow,
			SuggestedResponse: "Thank you for contacting our support team. We're reviewing your inquiry.",
		},
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), "out.csv"), time.UTC)
	want := sampleTable()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if !g.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("[%d] CreatedAt = %v, want %v", i, g.CreatedAt, w.CreatedAt)
		}
		g.CreatedAt, w.CreatedAt = time.Time{}, time.Time{}
		if g != w {
			t.Errorf("[%d] = %+v, want %+v", i, g, w)
		}
	}
}

func TestStore_SaveOverwritesAndLeavesNoTemp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "out.csv"), time.UTC)
	if err := s.Save(sampleTable()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(sampleTable()[:1]); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len after overwrite = %d, want 1", len(got))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("dir contains %v, want only out.csv", names)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), "out.csv"), time.UTC)
	if s.Exists() {
		t.Fatal("Exists() = true for missing file")
	}
	if _, err := s.Load(); !errors.Is(err, ErrNoReport) {
		t.Fatalf("Load error = %v, want ErrNoReport", err)
	}
}

func TestStore_LoadRejectsForeignFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path, time.UTC).Load(); err == nil {
		t.Fatal("Load of file without processed columns returned nil error")
	}
}

func TestStore_SaveIntoMissingDir(t *testing.T) {
	t.Parallel()

	s := NewStore(filepath.Join(t.TempDir(), "nope", "out.csv"), time.UTC)
	if err := s.Save(sampleTable()); err == nil {
		t.Fatal("Save into missing directory returned nil error")
	}
}

func TestStore_ExportXLSX(t *testing.T) {
	t.Parallel()

	s := NewStore("unused.csv", time.UTC)
	raw, err := s.ExportXLSX(sampleTable())
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != domain.ColumnTicketID || rows[0][10] != domain.ColumnSuggestedResponse {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "T-1" || rows[1][9] != "High" {
		t.Errorf("first row = %v", rows[1])
	}
}
