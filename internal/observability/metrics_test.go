package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "NOT_FOUND")
	m.RecordRun(domain.Run{Status: domain.RunStatusFailed})
}

func TestMetrics_RecordRun(t *testing.T) {
	t.Parallel()

	m := NewMetrics(prometheus.NewRegistry())
	start := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	summary := domain.Summary{
		Total:      3,
		ByCategory: []domain.Count{{Label: "Billing", Count: 2}, {Label: "General", Count: 1}},
		ByPriority: []domain.Count{{Label: "High", Count: 1}, {Label: "Low", Count: 1}, {Label: "Medium", Count: 1}},
	}
	m.RecordRun(domain.Run{
		Status:      domain.RunStatusSucceeded,
		TicketCount: 3,
		Summary:     &summary,
		StartedAt:   start,
		FinishedAt:  start.Add(40 * time.Millisecond),
	})
	m.RecordRun(domain.Run{Status: domain.RunStatusFailed, StartedAt: start, FinishedAt: start})

	if got := testutil.ToFloat64(m.TicketsProcessed); got != 3 {
		t.Errorf("tickets processed = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.RunsTotal.WithLabelValues(string(domain.RunStatusFailed))); got != 1 {
		t.Errorf("failed runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LastRunCategory.WithLabelValues("Billing")); got != 2 {
		t.Errorf("billing gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.LastRunCategory.WithLabelValues("Shipping")); got != 0 {
		t.Errorf("shipping gauge = %v, want 0", got)
	}
}
