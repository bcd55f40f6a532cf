package domain

import "time"

// RunStatus is the terminal state of a pipeline run.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusFailed    RunStatus = "FAILED"
)

// Run records one pipeline invocation.
type Run struct {
	ID          string
	SourcePath  string
	Status      RunStatus
	TicketCount int
	Error       string
	Summary     *Summary
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
