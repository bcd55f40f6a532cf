package events

import (
	"time"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPipelineCompleted EventType = "pipeline_completed"
	EventPipelineFailed    EventType = "pipeline_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string     `json:"id"`
	Type      EventType  `json:"type"`
	RunID     string     `json:"run_id"`
	Timestamp time.Time  `json:"timestamp"`
	Payload   RunPayload `json:"payload"`
}

// RunPayload describes the run that produced the event.
type RunPayload struct {
	SourcePath  string          `json:"source_path"`
	OutputPath  string          `json:"output_path,omitempty"`
	TicketCount int             `json:"ticket_count"`
	DurationMS  int64           `json:"duration_ms"`
	Error       string          `json:"error,omitempty"`
	Summary     *domain.Summary `json:"summary,omitempty"`
}

// NewRunEvent builds the event for a finished run.
func NewRunEvent(id string, run domain.Run, outputPath string) Event {
	eventType := EventPipelineCompleted
	if run.Status != domain.RunStatusSucceeded {
		eventType = EventPipelineFailed
		outputPath = ""
	}
	return Event{
		ID:        id,
		Type:      eventType,
		RunID:     run.ID,
		Timestamp: run.FinishedAt,
		Payload: RunPayload{
			SourcePath:  run.SourcePath,
			OutputPath:  outputPath,
			TicketCount: run.TicketCount,
			DurationMS:  run.Duration().Milliseconds(),
			Error:       run.Error,
			Summary:     run.Summary,
		},
	}
}
