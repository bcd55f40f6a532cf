package dto

import (
	"time"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// TicketRecord is one processed ticket keyed by its report column names.
type TicketRecord struct {
	TicketID          string  `json:"Ticket ID"`
	CustomerName      string  `json:"Customer Name"`
	Email             string  `json:"Email"`
	IssueDescription  string  `json:"Issue Description"`
	Status            string  `json:"Status"`
	CreatedAt         string  `json:"Created At"`
	Category          string  `json:"Category"`
	DaysOpen          float64 `json:"Days Open"`
	PriorityScore     float64 `json:"Priority Score"`
	Priority          string  `json:"Priority"`
	SuggestedResponse string  `json:"Suggested Response"`
}

// NewTicketRecords converts a table for the API, rendering timestamps in loc.
func NewTicketRecords(table domain.Table, loc *time.Location) []TicketRecord {
	out := make([]TicketRecord, 0, len(table))
	for _, t := range table {
		out = append(out, TicketRecord{
			TicketID:          t.ID,
			CustomerName:      t.CustomerName,
			Email:             t.Email,
			IssueDescription:  t.Description,
			Status:            string(t.Status),
			CreatedAt:         domain.FormatTimestamp(t.CreatedAt, loc),
			Category:          string(t.Category),
			DaysOpen:          t.DaysOpen,
			PriorityScore:     t.PriorityScore,
			Priority:          string(t.Priority),
			SuggestedResponse: t.SuggestedResponse,
		})
	}
	return out
}

// ProcessRequest is the optional body of POST /api/process.
type ProcessRequest struct {
	CSVPath string `json:"csv_path"`
}

// ProcessResponse reports a successful run.
type ProcessResponse struct {
	Message string `json:"message"`
	RunID   string `json:"run_id"`
}
