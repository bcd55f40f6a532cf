// Command triage runs the ticket pipeline once from the command line and
// prints a summary of the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/supportdesk/ticket-triage/internal/config"
	"github.com/supportdesk/ticket-triage/internal/domain"
	"github.com/supportdesk/ticket-triage/internal/observability"
	"github.com/supportdesk/ticket-triage/internal/pipeline"
	"github.com/supportdesk/ticket-triage/internal/report"
	"github.com/supportdesk/ticket-triage/internal/rules"
)

const sampleSize = 5

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("triage", flag.ContinueOnError)
	input := fs.String("input", "customer_support_data.csv", "input CSV or XLSX file")
	output := fs.String("output", "processed_customer_data.csv", "processed CSV output file")
	rulesFile := fs.String("rules", "", "YAML keyword/template rules (built-in defaults when empty)")
	seed := fs.Int64("seed", 0, "responder random seed (0 seeds from the clock)")
	logLevel := fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := observability.NewLogger(config.LoggerConfig{Level: *logLevel})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ruleSet := rules.Default()
	if *rulesFile != "" {
		if ruleSet, err = rules.Load(*rulesFile); err != nil {
			return err
		}
	}

	coordinator := pipeline.NewDefault(pipeline.Options{
		Rules:    ruleSet,
		Seed:     *seed,
		Location: time.Local,
	}, logger)
	table, err := coordinator.Run(ctx, *input)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}
	if err := report.NewStore(*output, time.Local).Save(table); err != nil {
		return err
	}

	printSummary(stdout, coordinator.Summarize(table), *output)
	printSample(stdout, table)
	return nil
}

func printSummary(w io.Writer, s domain.Summary, output string) {
	fmt.Fprintf(w, "Processed %d tickets -> %s\n\n", s.Total, output)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, group := range []struct {
		title  string
		counts []domain.Count
	}{
		{"Category", s.ByCategory},
		{"Priority", s.ByPriority},
		{"Status", s.ByStatus},
	} {
		fmt.Fprintf(tw, "%s\t\n", group.title)
		for _, c := range group.counts {
			fmt.Fprintf(tw, "  %s\t%d\n", c.Label, c.Count)
		}
	}
	_ = tw.Flush()
}

func printSample(w io.Writer, table domain.Table) {
	n := min(sampleSize, len(table))
	if n == 0 {
		return
	}
	fmt.Fprintf(w, "\nSample tickets:\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCategory\tPriority\tScore\tSuggested Response")
	for _, t := range table[:n] {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", t.ID, t.Category, t.Priority, t.PriorityScore, t.SuggestedResponse)
	}
	_ = tw.Flush()
}
