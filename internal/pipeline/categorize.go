package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/domain"
	"github.com/supportdesk/ticket-triage/internal/rules"
)

// Categorizer labels each ticket by keyword match on its description.
type Categorizer struct {
	rules  *rules.Rules
	logger *zap.Logger
}

// NewCategorizer builds the stage over the given rule set.
func NewCategorizer(r *rules.Rules, logger *zap.Logger) *Categorizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Categorizer{rules: r, logger: logger}
}

// Name implements Stage.
func (c *Categorizer) Name() string { return "categorize" }

// Apply sets Category on every ticket.
func (c *Categorizer) Apply(_ context.Context, table domain.Table) (domain.Table, error) {
	c.logger.Info("analyzing customer issues", zap.Int("count", len(table)))
	for i := range table {
		table[i].Category = c.rules.Match(table[i].Description)
	}
	return table, nil
}
