// Package pipeline implements the ticket triage stages and the coordinator
// that runs them in order.
package pipeline

import (
	"context"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// Stage transforms a table. Stages run strictly in sequence.
type Stage interface {
	Name() string
	Apply(ctx context.Context, table domain.Table) (domain.Table, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, table domain.Table) (domain.Table, error)
}

// Name returns the stage name.
func (s StageFunc) Name() string { return s.StageName }

// Apply runs the wrapped function.
func (s StageFunc) Apply(ctx context.Context, table domain.Table) (domain.Table, error) {
	return s.Fn(ctx, table)
}
