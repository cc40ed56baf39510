package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/studiowm/internal/wm"
)

// ErrLoopClosed is returned by Do once the loop has been closed.
var ErrLoopClosed = errors.New("window loop closed")

// Loop is the single goroutine that owns a wm.Manager. Commands and timer
// completions are funnelled through one channel so the manager never sees
// concurrent calls.
type Loop struct {
	mgr    *wm.Manager
	tasks  chan func()
	closed chan struct{}
	once   sync.Once
	logger *slog.Logger
}

// NewLoop builds the manager described by opts and binds its scheduler to the
// loop. opts.Scheduler is overwritten.
func NewLoop(opts wm.Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l := &Loop{
		tasks:  make(chan func(), 64),
		closed: make(chan struct{}),
		logger: logger,
	}
	opts.Scheduler = l
	l.mgr = wm.NewManager(opts)
	return l
}

func (l *Loop) String() string {
	return "window-loop"
}

// AfterFunc schedules fn to run on the loop goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		l.post(fn)
	})
}

func (l *Loop) post(fn func()) bool {
	select {
	case <-l.closed:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.closed:
		return false
	}
}

// Serve runs queued work until ctx is cancelled. It may be restarted after
// returning; queued work survives a restart.
func (l *Loop) Serve(ctx context.Context) error {
	l.logger.Debug("window loop started")
	defer l.logger.Debug("window loop stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.closed:
			return nil
		case fn := <-l.tasks:
			l.run(fn)
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			l.logger.Error("window loop task panic recovered", "error", err)
		}
	}()
	fn()
}

// Do runs fn on the loop goroutine and waits for it.
func (l *Loop) Do(ctx context.Context, fn func(*wm.Manager) error) error {
	done := make(chan error, 1)
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("window operation panicked: %v", r)
				panic(r)
			}
		}()
		done <- fn(l.mgr)
	}

	select {
	case l.tasks <- task:
	case <-l.closed:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops Serve and drops pending timer completions.
func (l *Loop) Close() {
	l.once.Do(func() {
		close(l.closed)
	})
}
