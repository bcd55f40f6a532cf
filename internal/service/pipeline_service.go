package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/domain"
	"github.com/supportdesk/ticket-triage/internal/events"
	"github.com/supportdesk/ticket-triage/internal/observability"
	"github.com/supportdesk/ticket-triage/internal/pipeline"
	"github.com/supportdesk/ticket-triage/internal/report"
	"github.com/supportdesk/ticket-triage/internal/repository"
	apperrors "github.com/supportdesk/ticket-triage/pkg/errorutil"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

// Runner executes the pipeline against a source file.
type Runner interface {
	Run(ctx context.Context, path string) (domain.Table, error)
}

// ProcessService runs the pipeline, persists its output and serves the
// persisted report.
type ProcessService struct {
	runner     Runner
	store      *report.Store
	runs       repository.RunRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time

	// one run at a time
	mu sync.Mutex
}

// ProcessDependencies bundles collaborators for ProcessService.
type ProcessDependencies struct {
	Runner     Runner
	Store      *report.Store
	RunRepo    repository.RunRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// NewProcessService constructs the service.
func NewProcessService(deps ProcessDependencies) *ProcessService {
	s := &ProcessService{
		runner:     deps.Runner,
		store:      deps.Store,
		runs:       deps.RunRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Now,
	}
	if s.runs == nil {
		s.runs = repository.NopRunRepository{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Process runs the pipeline on path and replaces the persisted report. A
// failed run leaves the previous report in place.
func (s *ProcessService) Process(ctx context.Context, path string) (*domain.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := &domain.Run{
		ID:         uuid.NewString(),
		SourcePath: path,
		StartedAt:  s.now(),
	}

	table, err := s.runner.Run(ctx, path)
	if err == nil {
		err = s.store.Save(table)
	}
	run.FinishedAt = s.now()

	if err != nil {
		run.Status = domain.RunStatusFailed
		run.Error = err.Error()
		s.finish(ctx, run)
		if errors.Is(err, pipeline.ErrSourceUnreadable) {
			return run, apperrors.NewSourceUnreadable(err)
		}
		return run, apperrors.NewInternalError(err)
	}

	summary := domain.Summarize(table)
	run.Status = domain.RunStatusSucceeded
	run.TicketCount = len(table)
	run.Summary = &summary
	s.finish(ctx, run)
	return run, nil
}

// finish records the run and announces it. Failures here are logged only;
// the report on disk is already authoritative.
func (s *ProcessService) finish(ctx context.Context, run *domain.Run) {
	s.metrics.RecordRun(*run)

	if err := s.runs.Create(ctx, run); err != nil {
		s.logger.Warn("failed to record pipeline run", zap.String("run_id", run.ID), zap.Error(err))
	}

	if s.dispatcher == nil {
		return
	}
	event := events.NewRunEvent(uuid.NewString(), *run, s.store.Path())
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

// Tickets returns the persisted report.
func (s *ProcessService) Tickets(ctx context.Context) (domain.Table, error) {
	table, err := s.store.Load()
	if err != nil {
		if errors.Is(err, report.ErrNoReport) {
			return nil, apperrors.NewNotFound(err.Error())
		}
		return nil, apperrors.NewInternalError(err)
	}
	return table, nil
}

// Summary aggregates the persisted report.
func (s *ProcessService) Summary(ctx context.Context) (domain.Summary, error) {
	table, err := s.Tickets(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(table), nil
}

// ExportXLSX renders the persisted report as a workbook.
func (s *ProcessService) ExportXLSX(ctx context.Context) ([]byte, error) {
	table, err := s.Tickets(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.store.ExportXLSX(table)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return raw, nil
}

// Runs lists recent pipeline runs, newest first. A non-positive limit
// selects the default; larger values are capped.
func (s *ProcessService) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	if limit > maxRunsLimit {
		limit = maxRunsLimit
	}
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return runs, nil
}

// ReportExists reports whether a processed report is on disk.
func (s *ProcessService) ReportExists() bool {
	return s.store.Exists()
}
