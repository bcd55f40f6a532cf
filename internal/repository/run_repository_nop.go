package repository

import (
	"context"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// NopRunRepository discards runs. It backs the service when no history
// store is configured.
type NopRunRepository struct{}

func (NopRunRepository) Create(context.Context, *domain.Run) error { return nil }

func (NopRunRepository) ListRecent(context.Context, int) ([]domain.Run, error) {
	return []domain.Run{}, nil
}
