package wm

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/1broseidon/studiowm/internal/clock"
	"github.com/1broseidon/studiowm/internal/geometry"
)

// Options configures a Manager.
type Options struct {
	Layout   Layout
	Timing   Timing
	Viewport geometry.Size

	// ZBase seeds the z-order counter so window ranks start above any
	// chrome drawn by the host.
	ZBase int

	// AddressTemplate and ImageTemplate derive a window's URL-like label
	// and image reference. "{project}" and "{title}" are substituted.
	AddressTemplate string
	ImageTemplate   string

	// Scheduler delivers delayed completions. Nil runs them immediately.
	Scheduler clock.Scheduler
	Listener  Listener
	Logger    *slog.Logger
}

type dragAnchor struct {
	pointer geometry.Point
	origin  geometry.Point
}

type resizeAnchor struct {
	pointer geometry.Point
	size    geometry.Size
}

// Manager owns the open windows.
type Manager struct {
	layout   Layout
	timing   Timing
	viewport geometry.Size

	windows  map[WindowID]*window
	nextID   WindowID
	zCounter int
	cascade  geometry.Point
	active   WindowID

	drags   map[WindowID]dragAnchor
	resizes map[WindowID]resizeAnchor

	addressTemplate string
	imageTemplate   string

	sched    clock.Scheduler
	listener Listener
	logger   *slog.Logger
}

// NewManager creates a manager with an empty window set.
func NewManager(opts Options) *Manager {
	sched := opts.Scheduler
	if sched == nil {
		sched = clock.SchedulerFunc(func(_ time.Duration, fn func()) { fn() })
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Manager{
		layout:          opts.Layout,
		timing:          opts.Timing,
		viewport:        opts.Viewport,
		windows:         make(map[WindowID]*window),
		zCounter:        opts.ZBase,
		cascade:         opts.Layout.CascadeBase,
		drags:           make(map[WindowID]dragAnchor),
		resizes:         make(map[WindowID]resizeAnchor),
		addressTemplate: opts.AddressTemplate,
		imageTemplate:   opts.ImageTemplate,
		sched:           sched,
		listener:        opts.Listener,
		logger:          logger,
	}
}

// live returns the window for id unless it is unknown or closing.
func (m *Manager) live(id WindowID) *window {
	w, ok := m.windows[id]
	if !ok || w.visibility == VisibilityClosing {
		return nil
	}
	return w
}

func (m *Manager) ignored(op string, id WindowID, reason string) {
	m.logger.Debug("window operation ignored", "op", op, "window", id, "reason", reason)
}

func (m *Manager) emit(kind EventKind, w *window) {
	if m.listener == nil {
		return
	}
	m.listener.HandleEvent(Event{
		Kind:       kind,
		WindowID:   w.id,
		Project:    w.project,
		Title:      w.title,
		Geometry:   w.geometry,
		Visibility: w.visibility,
		Maximized:  w.maximized,
	})
}

// Open shows the window for project, creating it if none is live. An
// existing window is focused and, if minimized, restored without animation.
func (m *Manager) Open(project, title string) WindowID {
	if id, ok := m.Lookup(project); ok {
		m.Focus(id)
		m.unminimize(m.windows[id])
		return id
	}

	m.nextID++
	id := m.nextID

	w := &window{
		id:      id,
		project: project,
		title:   title,
		address: expand(m.addressTemplate, project, title),
		image:   expand(m.imageTemplate, project, title),
		geometry: geometry.Rect{
			X:      m.cascade.X,
			Y:      m.cascade.Y,
			Width:  m.layout.DefaultSize.Width,
			Height: m.layout.DefaultSize.Height,
		},
		visibility: VisibilityNormal,
	}
	m.advanceCascade()
	m.windows[id] = w

	m.logger.Debug("window opened", "window", id, "project", project, "geometry", w.geometry.String())
	m.emit(EventOpened, w)
	m.Focus(id)
	return id
}

// advanceCascade steps the placement cursor, wrapping each axis
// independently.
func (m *Manager) advanceCascade() {
	m.cascade = m.cascade.Add(m.layout.CascadeStep)
	if m.cascade.X > m.layout.CascadeReset.X {
		m.cascade.X = m.layout.CascadeBase.X
	}
	if m.cascade.Y > m.layout.CascadeReset.Y {
		m.cascade.Y = m.layout.CascadeBase.Y
	}
}

func expand(template, project, title string) string {
	if template == "" {
		return ""
	}
	return strings.NewReplacer("{project}", project, "{title}", title).Replace(template)
}

// Focus raises id to the top of the z-order and makes it the only active
// window.
func (m *Manager) Focus(id WindowID) {
	w := m.live(id)
	if w == nil {
		m.ignored("focus", id, "unknown window")
		return
	}
	m.zCounter++
	w.zOrder = m.zCounter
	m.active = id
	m.emit(EventFocused, w)
}

// Close starts the close transition. The window is removed once the close
// delay elapses. Focus is not reassigned.
func (m *Manager) Close(id WindowID) {
	w := m.live(id)
	if w == nil {
		m.ignored("close", id, "unknown window")
		return
	}
	w.visibility = VisibilityClosing
	delete(m.drags, id)
	delete(m.resizes, id)
	m.emit(EventClosing, w)

	m.sched.AfterFunc(m.timing.CloseDelay, func() {
		m.finishClose(id)
	})
}

func (m *Manager) finishClose(id WindowID) {
	w, ok := m.windows[id]
	if !ok || w.visibility != VisibilityClosing {
		return
	}
	delete(m.windows, id)
	if m.active == id {
		m.active = 0
	}
	m.logger.Debug("window removed", "window", id, "project", w.project)
	m.emit(EventClosed, w)
}

// Minimize starts the minimize transition. Geometry is kept so a later
// restore reuses it.
func (m *Manager) Minimize(id WindowID) {
	w := m.live(id)
	if w == nil {
		m.ignored("minimize", id, "unknown window")
		return
	}
	if w.visibility == VisibilityMinimized || w.minimizing {
		m.ignored("minimize", id, "already minimized")
		return
	}
	w.minimizing = true
	w.minimizeSeq++
	seq := w.minimizeSeq
	delete(m.drags, id)
	delete(m.resizes, id)
	m.emit(EventMinimizing, w)

	m.sched.AfterFunc(m.timing.MinimizeDelay, func() {
		m.finishMinimize(id, seq)
	})
}

func (m *Manager) finishMinimize(id WindowID, seq uint64) {
	w := m.live(id)
	if w == nil || !w.minimizing || w.minimizeSeq != seq {
		return
	}
	w.minimizing = false
	w.visibility = VisibilityMinimized
	m.emit(EventMinimized, w)
}

// Restore brings a minimized (or minimizing) window back and focuses it.
func (m *Manager) Restore(id WindowID) {
	w := m.live(id)
	if w == nil {
		m.ignored("restore", id, "unknown window")
		return
	}
	if w.visibility != VisibilityMinimized && !w.minimizing {
		m.ignored("restore", id, "not minimized")
		return
	}
	m.Focus(id)
	m.unminimize(w)
}

// unminimize shows w immediately and voids any pending minimize.
func (m *Manager) unminimize(w *window) {
	if w.visibility != VisibilityMinimized && !w.minimizing {
		return
	}
	w.minimizing = false
	w.minimizeSeq++
	w.visibility = VisibilityNormal
	m.emit(EventRestored, w)
}

// ToggleMaximize maximizes a window to the viewport minus the reserved
// bands, or restores the geometry saved when it was maximized.
func (m *Manager) ToggleMaximize(id WindowID) {
	w := m.live(id)
	if w == nil {
		m.ignored("toggle-maximize", id, "unknown window")
		return
	}

	w.maximizing = true
	w.maximizeSeq++
	seq := w.maximizeSeq
	m.emit(EventMaximizing, w)

	if w.maximized {
		w.geometry = *w.saved
		w.saved = nil
		w.maximized = false
	} else {
		saved := w.geometry
		w.saved = &saved
		w.geometry = m.maximizedRect()
		w.maximized = true
	}
	delete(m.drags, id)
	delete(m.resizes, id)
	m.emit(EventGeometryChanged, w)

	m.sched.AfterFunc(m.timing.MaximizeSettle, func() {
		m.settleMaximize(id, seq)
	})
}

func (m *Manager) settleMaximize(id WindowID, seq uint64) {
	w := m.live(id)
	if w == nil || w.maximizeSeq != seq {
		return
	}
	w.maximizing = false
	m.emit(EventMaximizeSettled, w)
}

func (m *Manager) maximizedRect() geometry.Rect {
	return geometry.Rect{
		X:      0,
		Y:      m.layout.TopInset,
		Width:  m.viewport.Width,
		Height: geometry.AtLeast(m.viewport.Height-m.layout.TopInset-m.layout.BottomInset, 0),
	}
}

// SetViewport changes the backdrop size. Maximized windows follow it.
func (m *Manager) SetViewport(size geometry.Size) {
	if size == m.viewport {
		return
	}
	m.viewport = size
	rect := m.maximizedRect()
	for _, w := range m.sortedWindows() {
		if !w.maximized || w.visibility == VisibilityClosing || w.geometry == rect {
			continue
		}
		w.geometry = rect
		m.emit(EventGeometryChanged, w)
	}
}

// Viewport returns the current backdrop size.
func (m *Manager) Viewport() geometry.Size {
	return m.viewport
}

// Layout returns the layout constants in use.
func (m *Manager) Layout() Layout {
	return m.layout
}

// Window returns a snapshot of id. Closing windows are still reported until
// they are removed.
func (m *Manager) Window(id WindowID) (Window, bool) {
	w, ok := m.windows[id]
	if !ok {
		return Window{}, false
	}
	return w.snapshot(m.active), true
}

// Windows returns snapshots of every window in ascending z-order, so the
// last element is the topmost.
func (m *Manager) Windows() []Window {
	sorted := m.sortedWindows()
	out := make([]Window, 0, len(sorted))
	for _, w := range sorted {
		out = append(out, w.snapshot(m.active))
	}
	return out
}

func (m *Manager) sortedWindows() []*window {
	out := make([]*window, 0, len(m.windows))
	for _, w := range m.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].zOrder != out[j].zOrder {
			return out[i].zOrder < out[j].zOrder
		}
		return out[i].id < out[j].id
	})
	return out
}

// Lookup returns the live window bound to project.
func (m *Manager) Lookup(project string) (WindowID, bool) {
	for id, w := range m.windows {
		if w.project == project && w.visibility != VisibilityClosing {
			return id, true
		}
	}
	return 0, false
}

// Active returns the most recently focused window, or 0 once it is removed.
func (m *Manager) Active() WindowID {
	return m.active
}

// Len returns the number of windows, including ones still closing.
func (m *Manager) Len() int {
	return len(m.windows)
}
