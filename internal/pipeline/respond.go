package pipeline

import (
	"context"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/domain"
	"github.com/supportdesk/ticket-triage/internal/rules"
)

// Responder drafts a reply per ticket from its category's template pool.
type Responder struct {
	rules  *rules.Rules
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponder builds the stage. rng supplies template choice; pass a seeded
// source for reproducible output.
func NewResponder(r *rules.Rules, rng *rand.Rand, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{rules: r, rng: rng, logger: logger}
}

// Name implements Stage.
func (r *Responder) Name() string { return "respond" }

// Apply sets SuggestedResponse on every ticket.
func (r *Responder) Apply(_ context.Context, table domain.Table) (domain.Table, error) {
	r.logger.Info("generating responses", zap.Int("count", len(table)))

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range table {
		pool := r.rules.Templates(table[i].Category)
		if len(pool) == 0 {
			continue
		}
		table[i].SuggestedResponse = pool[r.rng.Intn(len(pool))]
	}
	return table, nil
}
