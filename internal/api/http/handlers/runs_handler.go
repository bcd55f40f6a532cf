package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/ticket-triage/internal/api/dto"
	"github.com/supportdesk/ticket-triage/internal/service"
	apperrors "github.com/supportdesk/ticket-triage/pkg/errorutil"
)

// RunsHandler exposes pipeline run history.
type RunsHandler struct {
	service *service.ProcessService
}

// NewRunsHandler constructs handler.
func NewRunsHandler(processService *service.ProcessService) *RunsHandler {
	return &RunsHandler{service: processService}
}

// ListRuns GET /api/runs?limit=N.
func (h *RunsHandler) ListRuns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return apperrors.NewValidationError("limit must not be negative")
	}
	runs, err := h.service.Runs(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"runs": dto.NewRunSummaries(runs)})
}
