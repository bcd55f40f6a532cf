package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/supportdesk/ticket-triage/internal/api/dto"
	"github.com/supportdesk/ticket-triage/internal/service"
	apperrors "github.com/supportdesk/ticket-triage/pkg/errorutil"
)

// ProcessHandler triggers pipeline runs.
type ProcessHandler struct {
	service     *service.ProcessService
	defaultPath string
}

// NewProcessHandler constructs handler. defaultPath is used when the request
// names no file.
func NewProcessHandler(processService *service.ProcessService, defaultPath string) *ProcessHandler {
	return &ProcessHandler{service: processService, defaultPath: defaultPath}
}

// Process POST /api/process.
func (h *ProcessHandler) Process(c *fiber.Ctx) error {
	var req dto.ProcessRequest
	if body := c.Body(); len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return apperrors.NewValidationError("invalid JSON body")
		}
	}
	path := strings.TrimSpace(req.CSVPath)
	if path == "" {
		path = h.defaultPath
	}

	run, err := h.service.Process(c.UserContext(), path)
	if err != nil {
		return err
	}
	return c.JSON(dto.ProcessResponse{
		Message: fmt.Sprintf("Processed %d tickets successfully", run.TicketCount),
		RunID:   run.ID,
	})
}
