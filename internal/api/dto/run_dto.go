package dto

import (
	"time"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// RunSummary describes one pipeline run in history listings.
type RunSummary struct {
	ID          string          `json:"id"`
	SourcePath  string          `json:"source_path"`
	Status      string          `json:"status"`
	TicketCount int             `json:"ticket_count"`
	Error       string          `json:"error,omitempty"`
	Summary     *domain.Summary `json:"summary,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
	DurationMS  int64           `json:"duration_ms"`
}

// NewRunSummaries converts runs for the API.
func NewRunSummaries(runs []domain.Run) []RunSummary {
	out := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunSummary{
			ID:          r.ID,
			SourcePath:  r.SourcePath,
			Status:      string(r.Status),
			TicketCount: r.TicketCount,
			Error:       r.Error,
			Summary:     r.Summary,
			StartedAt:   r.StartedAt,
			FinishedAt:  r.FinishedAt,
			DurationMS:  r.Duration().Milliseconds(),
		})
	}
	return out
}
