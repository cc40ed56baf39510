package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/studiowm/internal/config"
	"github.com/1broseidon/studiowm/internal/geometry"
	"github.com/1broseidon/studiowm/internal/wm"
)

type (
	tickMsg  time.Time
	eventMsg wm.Event
)

type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDrag
	gestureResize
)

// gesture is the pointer interaction in progress, if any.
type gesture struct {
	kind   gestureKind
	window wm.WindowID
}

var helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)

type model struct {
	ctx      context.Context
	desk     Desk
	projects []config.Project
	now      func() time.Time

	windows  []wm.Window
	viewport geometry.Size
	layout   wm.Layout
	gesture  gesture

	clock  time.Time
	status string

	keys keyMap
	help help.Model

	width  int
	height int
}

func newModel(ctx context.Context, opts Options) model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	m := model{
		ctx:      ctx,
		desk:     opts.Desk,
		projects: opts.Projects,
		now:      now,
		clock:    now(),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.refresh()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.clock = time.Time(msg)
		return m, tick()

	case eventMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Open):
			if idx := int(msg.Runes[0] - '1'); idx < len(m.projects) {
				m.open(m.projects[idx].Project)
			}
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	s := m.screen()
	p := s.point(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		h := s.hitTest(m.windows, m.dock(s), msg.X, msg.Y)
		switch h.part {
		case partDock:
			if h.project != "" {
				m.open(h.project)
			}
		case partBody, partTitle, partClose, partMinimize, partMaximize, partGrip:
			m.press(h, p)
		}

	case tea.MouseActionMotion:
		g := m.gesture
		if g.kind == gestureNone {
			return
		}
		m.apply(func(mgr *wm.Manager) {
			if g.kind == gestureDrag {
				mgr.UpdateDrag(g.window, p)
			} else {
				mgr.UpdateResize(g.window, p)
			}
		})

	case tea.MouseActionRelease:
		g := m.gesture
		m.gesture = gesture{}
		if g.kind == gestureNone {
			return
		}
		m.apply(func(mgr *wm.Manager) {
			if g.kind == gestureDrag {
				mgr.EndDrag(g.window)
			} else {
				mgr.EndResize(g.window)
			}
		})
	}
}

// press focuses the window under the pointer, then acts on the part hit.
func (m *model) press(h hit, p geometry.Point) {
	id := h.window
	var started gesture
	m.apply(func(mgr *wm.Manager) {
		mgr.Focus(id)
		switch h.part {
		case partClose:
			mgr.Close(id)
		case partMinimize:
			mgr.Minimize(id)
		case partMaximize:
			mgr.ToggleMaximize(id)
		case partTitle:
			mgr.BeginDrag(id, p)
			if mgr.Dragging(id) {
				started = gesture{kind: gestureDrag, window: id}
			}
		case partGrip:
			mgr.BeginResize(id, p)
			if mgr.Resizing(id) {
				started = gesture{kind: gestureResize, window: id}
			}
		}
	})
	m.gesture = started
}

func (m *model) open(project string) {
	if _, err := m.desk.Open(m.ctx, project, ""); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.refresh()
}

// apply runs fn against the manager and reloads the snapshot.
func (m *model) apply(fn func(*wm.Manager)) {
	err := m.desk.Do(m.ctx, func(mgr *wm.Manager) error {
		fn(mgr)
		m.load(mgr)
		return nil
	})
	if err != nil {
		m.status = err.Error()
	}
}

func (m *model) refresh() {
	m.apply(func(*wm.Manager) {})
}

func (m *model) load(mgr *wm.Manager) {
	m.windows = mgr.Windows()
	m.viewport = mgr.Viewport()
	m.layout = mgr.Layout()
}

func (m model) screen() screen {
	return screen{
		viewport: m.viewport,
		layout:   m.layout,
		cols:     m.width,
		rows:     max(m.height-lipgloss.Height(m.help.View(m.keys)), menuRows+dockRows+1),
	}
}

func (m model) dock(s screen) []dockItem {
	return dockLayout(m.projects, m.windows, s.cols)
}

func (m model) activeTitle() string {
	for _, w := range m.windows {
		if w.Active {
			return w.Title
		}
	}
	return ""
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	s := m.screen()
	desk := renderDesktop(frame{
		screen:  s,
		windows: m.windows,
		dock:    m.dock(s),
		menu:    m.activeTitle(),
		clock:   m.clock.Format("Mon 15:04"),
		status:  m.status,
	})
	return lipgloss.JoinVertical(lipgloss.Left, desk.String(), helpBarStyle.Render(m.help.View(m.keys)))
}
