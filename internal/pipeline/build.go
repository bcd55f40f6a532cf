package pipeline

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/rules"
)

// Options configures the standard pipeline.
type Options struct {
	Rules    *rules.Rules
	Seed     int64
	Now      func() time.Time
	Location *time.Location
}

// NewDefault wires ingest, categorize, prioritize and respond. A zero Seed
// seeds the responder from the clock.
func NewDefault(opts Options, logger *zap.Logger) *Coordinator {
	r := opts.Rules
	if r == nil {
		r = rules.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	stages := []Stage{
		NewCategorizer(r, logger),
		NewPrioritizer(opts.Now, logger),
		NewResponder(r, rand.New(rand.NewSource(seed)), logger),
	}
	return NewCoordinator(NewIngestor(logger, opts.Location), stages, logger)
}
