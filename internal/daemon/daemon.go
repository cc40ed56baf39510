package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/1broseidon/studiowm/internal/config"
	"github.com/1broseidon/studiowm/internal/geometry"
	"github.com/1broseidon/studiowm/internal/wm"
)

// Options configures a Daemon.
type Options struct {
	Config     *config.Config
	ConfigPath string // reread on Reload; empty disables reloading
	Logger     *slog.Logger

	// EventBuffer is the per-subscriber buffer of the event hub.
	EventBuffer int
}

// Daemon ties the window loop to its configuration and event feed.
type Daemon struct {
	loop   *Loop
	events *Hub[wm.Event]
	logger *slog.Logger

	cfgMu   sync.RWMutex
	cfg     *config.Config
	cfgPath string

	started time.Time
}

// Status summarizes the daemon for GET_STATUS.
type Status struct {
	Windows     int
	Active      wm.WindowID
	Viewport    geometry.Size
	Uptime      time.Duration
	Subscribers int
}

// ProjectState is a catalog entry and the window currently bound to it.
type ProjectState struct {
	config.Project
	WindowID wm.WindowID
	Open     bool
}

func New(opts Options) *Daemon {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	buffer := opts.EventBuffer
	if buffer <= 0 {
		buffer = 128
	}

	d := &Daemon{
		events:  NewHub[wm.Event](buffer),
		logger:  logger,
		cfg:     cfg,
		cfgPath: opts.ConfigPath,
		started: time.Now(),
	}
	d.loop = NewLoop(wm.Options{
		Layout:          cfg.WMLayout(),
		Timing:          cfg.WMTiming(),
		Viewport:        cfg.ViewportSize(),
		ZBase:           cfg.ZBase,
		AddressTemplate: cfg.AddressTemplate,
		ImageTemplate:   cfg.ImageTemplate,
		Listener:        wm.ListenerFunc(d.handleEvent),
		Logger:          logger.With("component", "wm"),
	})
	return d
}

func (d *Daemon) handleEvent(e wm.Event) {
	d.logger.Debug("window event", "kind", e.Kind.String(), "window", e.WindowID, "project", e.Project)
	d.events.Publish(e)
}

// Loop returns the window loop. It must be served for any operation to run.
func (d *Daemon) Loop() *Loop {
	return d.loop
}

// Events returns the notification hub.
func (d *Daemon) Events() *Hub[wm.Event] {
	return d.events
}

func (d *Daemon) Config() *config.Config {
	d.cfgMu.RLock()
	defer d.cfgMu.RUnlock()
	return d.cfg
}

// ConfigPath returns the file Reload rereads, if any.
func (d *Daemon) ConfigPath() string {
	return d.cfgPath
}

// Do runs fn against the window manager on the loop goroutine.
func (d *Daemon) Do(ctx context.Context, fn func(*wm.Manager) error) error {
	return d.loop.Do(ctx, fn)
}

// Open opens (or re-focuses) the window for project. An empty title falls
// back to the catalog title, then to the project key.
func (d *Daemon) Open(ctx context.Context, project, title string) (wm.Window, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return wm.Window{}, fmt.Errorf("project is required")
	}
	if strings.TrimSpace(title) == "" {
		title = d.Config().TitleFor(project)
	}

	var win wm.Window
	err := d.Do(ctx, func(m *wm.Manager) error {
		id := m.Open(project, title)
		win, _ = m.Window(id)
		return nil
	})
	return win, err
}

// Windows returns every window in ascending z-order.
func (d *Daemon) Windows(ctx context.Context) ([]wm.Window, error) {
	var out []wm.Window
	err := d.Do(ctx, func(m *wm.Manager) error {
		out = m.Windows()
		return nil
	})
	return out, err
}

// Projects lists the catalog with the live window bound to each entry.
func (d *Daemon) Projects(ctx context.Context) ([]ProjectState, error) {
	catalog := d.Config().Projects
	out := make([]ProjectState, len(catalog))
	err := d.Do(ctx, func(m *wm.Manager) error {
		for i, p := range catalog {
			out[i].Project = p
			if id, ok := m.Lookup(p.Project); ok {
				out[i].WindowID = id
				out[i].Open = true
			}
		}
		return nil
	})
	return out, err
}

func (d *Daemon) Status(ctx context.Context) (Status, error) {
	st := Status{
		Uptime:      time.Since(d.started),
		Subscribers: d.events.Len(),
	}
	err := d.Do(ctx, func(m *wm.Manager) error {
		st.Windows = m.Len()
		st.Active = m.Active()
		st.Viewport = m.Viewport()
		return nil
	})
	return st, err
}

// SetViewport resizes the backdrop.
func (d *Daemon) SetViewport(ctx context.Context, size geometry.Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", size.Width, size.Height)
	}
	return d.Do(ctx, func(m *wm.Manager) error {
		if m.Viewport() != size {
			d.logger.Info("viewport changed", "width", size.Width, "height", size.Height)
		}
		m.SetViewport(size)
		return nil
	})
}

// Reload rereads the config file. The catalog and a static viewport take
// effect immediately; layout, timing and templates need a restart.
func (d *Daemon) Reload(ctx context.Context) error {
	if d.cfgPath == "" {
		return fmt.Errorf("no config file to reload")
	}
	res, err := config.LoadFromPath(d.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	next := res.Config

	d.cfgMu.Lock()
	prev := d.cfg
	d.cfg = next
	d.cfgMu.Unlock()

	if prev.WMLayout() != next.WMLayout() || prev.WMTiming() != next.WMTiming() ||
		prev.ZBase != next.ZBase ||
		prev.AddressTemplate != next.AddressTemplate || prev.ImageTemplate != next.ImageTemplate {
		d.logger.Warn("layout, timing and template changes apply after a daemon restart")
	}

	if next.Viewport.Source == config.ViewportSourceStatic {
		if err := d.SetViewport(ctx, next.ViewportSize()); err != nil {
			return err
		}
	}
	d.logger.Info("config reloaded", "path", d.cfgPath, "projects", len(next.Projects))
	return nil
}

// Uptime returns how long the daemon has existed.
func (d *Daemon) Uptime() time.Duration {
	return time.Since(d.started)
}

// Close stops the loop and disconnects every event subscriber.
func (d *Daemon) Close() {
	d.loop.Close()
	d.events.Close()
}
