package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// Known reports whether the status is one of the documented values.
func (s TicketStatus) Known() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Category is the topical label assigned by keyword match.
type Category string

const (
	CategoryTechnical Category = "Technical"
	CategoryBilling   Category = "Billing"
	CategoryAccount   Category = "Account"
	CategoryProduct   Category = "Product"
	CategoryShipping  Category = "Shipping"
	CategoryGeneral   Category = "General"
)

// Categories lists every category in match order, General last.
var Categories = []Category{
	CategoryTechnical,
	CategoryBilling,
	CategoryAccount,
	CategoryProduct,
	CategoryShipping,
	CategoryGeneral,
}

// Known reports whether the category is one of the documented values.
func (c Category) Known() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// TicketPriority is the batch-relative urgency tier.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// Known reports whether the priority is one of the documented values.
func (p TicketPriority) Known() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Ticket is one row of the support table. Fields after CreatedAt are derived
// by the pipeline stages.
type Ticket struct {
	ID           string
	CustomerName string
	Email        string
	Description  string
	Status       TicketStatus
	CreatedAt    time.Time

	Category          Category
	DaysOpen          float64
	PriorityScore     float64
	Priority          TicketPriority
	SuggestedResponse string
}

// Table is the in-memory batch handed from stage to stage.
type Table []Ticket
