package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/ticket-triage/internal/api/dto"
	"github.com/supportdesk/ticket-triage/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TicketsHandler serves the persisted report.
type TicketsHandler struct {
	service  *service.ProcessService
	location *time.Location
}

// NewTicketsHandler constructs handler. Timestamps are rendered in loc.
func NewTicketsHandler(processService *service.ProcessService, loc *time.Location) *TicketsHandler {
	return &TicketsHandler{service: processService, location: loc}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	table, err := h.service.Tickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketRecords(table, h.location))
}

// Summary GET /api/summary.
func (h *TicketsHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// ExportXLSX GET /api/tickets/export.xlsx.
func (h *TicketsHandler) ExportXLSX(c *fiber.Ctx) error {
	raw, err := h.service.ExportXLSX(c.UserContext())
	if err != nil {
		return err
	}
	c.Attachment("processed_customer_data.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(raw)
}
