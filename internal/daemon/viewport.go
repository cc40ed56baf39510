package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/studiowm/internal/geometry"
)

// ViewportProbe reports the current backdrop size.
type ViewportProbe func(ctx context.Context) (geometry.Size, error)

// ViewportWatcher polls a probe and feeds size changes to the daemon.
type ViewportWatcher struct {
	daemon   *Daemon
	probe    ViewportProbe
	interval time.Duration
	last     geometry.Size
}

func NewViewportWatcher(d *Daemon, probe ViewportProbe, interval time.Duration) *ViewportWatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &ViewportWatcher{daemon: d, probe: probe, interval: interval}
}

func (w *ViewportWatcher) String() string {
	return "viewport-watcher"
}

// Serve polls until ctx is cancelled. Probe failures are logged and retried
// on the next tick.
func (w *ViewportWatcher) Serve(ctx context.Context) error {
	logger := w.daemon.logger.With("service", w.String())
	logger.Info("viewport watcher started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.poll(ctx, logger)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *ViewportWatcher) poll(ctx context.Context, logger *slog.Logger) {
	size, err := w.probe(ctx)
	if err != nil {
		logger.Warn("viewport probe failed", "error", err)
		return
	}
	if size == w.last {
		return
	}
	if err := w.daemon.SetViewport(ctx, size); err != nil {
		logger.Warn("failed to apply viewport", "error", err)
		return
	}
	w.last = size
}
