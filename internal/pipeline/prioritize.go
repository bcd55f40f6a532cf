package pipeline

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

const (
	hoursPerDay      = 24.0
	daysOpenWeight   = 0.5
	daysOpenMaxScore = 5.0
)

// Prioritizer scores tickets and bins the scores into batch tertiles.
type Prioritizer struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewPrioritizer builds the stage. now is read once per Apply; nil means
// time.Now.
func NewPrioritizer(now func() time.Time, logger *zap.Logger) *Prioritizer {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prioritizer{now: now, logger: logger}
}

// Name implements Stage.
func (p *Prioritizer) Name() string { return "prioritize" }

// Apply sets DaysOpen, PriorityScore and Priority on every ticket.
func (p *Prioritizer) Apply(_ context.Context, table domain.Table) (domain.Table, error) {
	p.logger.Info("prioritizing tickets", zap.Int("count", len(table)))

	evaluatedAt := p.now()
	scores := make([]float64, len(table))
	for i := range table {
		table[i].DaysOpen = DaysOpen(table[i].CreatedAt, evaluatedAt)
		table[i].PriorityScore = Score(table[i].Status, table[i].Category, table[i].DaysOpen)
		scores[i] = table[i].PriorityScore
	}

	tiers := Tertiles(scores)
	for i := range table {
		table[i].Priority = tiers[i]
	}
	return table, nil
}

// DaysOpen is the fractional number of days between created and now, never
// negative.
func DaysOpen(created, now time.Time) float64 {
	days := now.Sub(created).Hours() / hoursPerDay
	if days < 0 {
		return 0
	}
	return days
}

// Score is the linear priority formula.
func Score(status domain.TicketStatus, cat domain.Category, daysOpen float64) float64 {
	score := 0.0
	switch status {
	case domain.TicketStatusOpen:
		score += 3
	case domain.TicketStatusInProgress:
		score += 2
	}
	score += math.Min(daysOpen*daysOpenWeight, daysOpenMaxScore)
	switch cat {
	case domain.CategoryTechnical:
		score += 2
	case domain.CategoryBilling:
		score += 3
	}
	return score
}

// Tertiles assigns Low/Medium/High by equal-frequency quantile cuts of the
// batch. Intervals are right-closed: score <= q(1/3) is Low, score <= q(2/3)
// is Medium, the rest High. A batch whose scores are all equal is Medium.
func Tertiles(scores []float64) []domain.TicketPriority {
	out := make([]domain.TicketPriority, len(scores))
	if len(scores) == 0 {
		return out
	}

	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	if sorted[0] == sorted[len(sorted)-1] {
		for i := range out {
			out[i] = domain.TicketPriorityMedium
		}
		return out
	}

	lowCut := quantile(sorted, 1, 3)
	highCut := quantile(sorted, 2, 3)
	for i, s := range scores {
		switch {
		case s <= lowCut:
			out[i] = domain.TicketPriorityLow
		case s <= highCut:
			out[i] = domain.TicketPriorityMedium
		default:
			out[i] = domain.TicketPriorityHigh
		}
	}
	return out
}

// quantile returns the num/den quantile using linear interpolation between
// closest ranks. sorted must be ascending and non-empty.
func quantile(sorted []float64, num, den int) float64 {
	pos := float64(num*(len(sorted)-1)) / float64(den)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
