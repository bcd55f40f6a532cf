package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

// Processor runs the pipeline for a source file.
type Processor interface {
	Process(ctx context.Context, path string) (*domain.Run, error)
}

// InputWatcher reprocesses the input file whenever it is created or written.
type InputWatcher struct {
	path      string
	debounce  time.Duration
	processor Processor
	logger    *zap.Logger
	done      chan struct{}
}

// NewInputWatcher builds a watcher for path. Bursts of events within
// debounce trigger one run.
func NewInputWatcher(path string, debounce time.Duration, processor Processor, logger *zap.Logger) *InputWatcher {
	return &InputWatcher{
		path:      path,
		debounce:  debounce,
		processor: processor,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start begins watching the input file's directory. The watch stops when
// ctx is cancelled; Done is closed afterwards.
func (w *InputWatcher) Start(ctx context.Context) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(target)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.logger.Info("watching input file", zap.String("path", target), zap.Duration("debounce", w.debounce))
	go w.loop(ctx, fsw, target)
	return nil
}

// Done is closed once the watch loop has exited.
func (w *InputWatcher) Done() <-chan struct{} {
	return w.done
}

func (w *InputWatcher) loop(ctx context.Context, fsw *fsnotify.Watcher, target string) {
	defer close(w.done)
	defer fsw.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != target || e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.logger.Debug("input changed", zap.String("op", e.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			w.run(ctx)
		}
	}
}

func (w *InputWatcher) run(ctx context.Context) {
	run, err := w.processor.Process(ctx, w.path)
	if err != nil {
		w.logger.Warn("reprocessing input failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("reprocessed input",
		zap.String("run_id", run.ID),
		zap.Int("tickets", run.TicketCount))
}
