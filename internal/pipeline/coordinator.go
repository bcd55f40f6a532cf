package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// Loader produces the initial table from a source path.
type Loader interface {
	Load(ctx context.Context, path string) (domain.Table, error)
}

// Coordinator runs ingestion and then each stage in order.
type Coordinator struct {
	loader Loader
	stages []Stage
	logger *zap.Logger
}

// NewCoordinator wires the loader and the ordered stages.
func NewCoordinator(loader Loader, stages []Stage, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{loader: loader, stages: append([]Stage(nil), stages...), logger: logger}
}

// Run processes the file at path. An ingestion failure aborts before any
// stage runs.
func (c *Coordinator) Run(ctx context.Context, path string) (domain.Table, error) {
	start := time.Now()
	c.logger.Info("starting pipeline", zap.String("path", path))

	table, err := c.loader.Load(ctx, path)
	if err != nil {
		c.logger.Error("pipeline failed at ingestion", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	for _, stage := range c.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stageStart := time.Now()
		table, err = stage.Apply(ctx, table)
		if err != nil {
			c.logger.Error("stage failed", zap.String("stage", stage.Name()), zap.Error(err))
			return nil, fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		c.logger.Info("stage completed",
			zap.String("stage", stage.Name()),
			zap.Int("records", len(table)),
			zap.Duration("elapsed", time.Since(stageStart)))
	}

	c.logger.Info("pipeline completed",
		zap.String("path", path),
		zap.Int("records", len(table)),
		zap.Duration("elapsed", time.Since(start)))
	return table, nil
}

// Summarize returns aggregate counts for a processed table.
func (c *Coordinator) Summarize(table domain.Table) domain.Summary {
	return domain.Summarize(table)
}
