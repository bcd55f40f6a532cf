package domain

// Column headers shared by the input and output tables.
const (
	ColumnTicketID          = "Ticket ID"
	ColumnCustomerName      = "Customer Name"
	ColumnEmail             = "Email"
	ColumnIssueDescription  = "Issue Description"
	ColumnStatus            = "Status"
	ColumnCreatedAt         = "Created At"
	ColumnCategory          = "Category"
	ColumnDaysOpen          = "Days Open"
	ColumnPriorityScore     = "Priority Score"
	ColumnPriority          = "Priority"
	ColumnSuggestedResponse = "Suggested Response"
)

// InputColumns must all be present in an ingested file.
var InputColumns = []string{
	ColumnTicketID,
	ColumnCustomerName,
	ColumnEmail,
	ColumnIssueDescription,
	ColumnStatus,
	ColumnCreatedAt,
}

// OutputColumns is the column order of the processed table.
var OutputColumns = append(append([]string{}, InputColumns...),
	ColumnCategory,
	ColumnDaysOpen,
	ColumnPriorityScore,
	ColumnPriority,
	ColumnSuggestedResponse,
)

// TimestampLayout is how Created At is written back out.
const TimestampLayout = "2006-01-02 15:04:05"
