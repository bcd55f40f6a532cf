package worker

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

type countingProcessor struct {
	mu    sync.Mutex
	paths []string
	calls chan struct{}
}

func newCountingProcessor() *countingProcessor {
	return &countingProcessor{calls: make(chan struct{}, 16)}
}

func (p *countingProcessor) Process(_ context.Context, path string) (*domain.Run, error) {
	p.mu.Lock()
	p.paths = append(p.paths, path)
	p.mu.Unlock()
	p.calls <- struct{}{}
	return &domain.Run{ID: "run", TicketCount: 1}, nil
}

func (p *countingProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.paths)
}

func startWatcher(t *testing.T, path string, debounce time.Duration, p Processor) (*InputWatcher, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := NewInputWatcher(path, debounce, p, zap.NewNop())
	if err := w.Start(ctx); err != nil {
		cancel()
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		<-w.Done()
	})
	return w, cancel
}

func TestInputWatcher_ProcessesOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "input.csv")
	proc := newCountingProcessor()
	startWatcher(t, input, 50*time.Millisecond, proc)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(input, []byte("Ticket ID\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-proc.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("processor not called after input write")
	}
	proc.mu.Lock()
	got := proc.paths[0]
	proc.mu.Unlock()
	if got != input {
		t.Errorf("processed %q, want %q", got, input)
	}
}

func TestInputWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	proc := newCountingProcessor()
	startWatcher(t, filepath.Join(dir, "input.csv"), 20*time.Millisecond, proc)

	if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if n := proc.count(); n != 0 {
		t.Fatalf("processor called %d times for unrelated file", n)
	}
}

func TestInputWatcher_StopsOnCancel(t *testing.T) {
	t.Parallel()

	w, cancel := startWatcher(t, filepath.Join(t.TempDir(), "input.csv"), time.Millisecond, newCountingProcessor())
	cancel()
	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestInputWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	w := NewInputWatcher(filepath.Join(t.TempDir(), "nope", "input.csv"), time.Millisecond, newCountingProcessor(), zap.NewNop())
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("Start on missing directory returned nil error")
	}
}
