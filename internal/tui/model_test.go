package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/studiowm/internal/geometry"
	"github.com/1broseidon/studiowm/internal/wm"
)

// managerDesk drives a Manager directly. Transitions finish immediately
// because the Manager has no scheduler.
type managerDesk struct {
	mgr *wm.Manager
}

func (d *managerDesk) Open(_ context.Context, project, title string) (wm.Window, error) {
	if title == "" {
		title = strings.ToUpper(project[:1]) + project[1:]
	}
	w, _ := d.mgr.Window(d.mgr.Open(project, title))
	return w, nil
}

func (d *managerDesk) Do(_ context.Context, fn func(*wm.Manager) error) error {
	return fn(d.mgr)
}

func newTestModel(t *testing.T) (model, *wm.Manager) {
	t.Helper()
	mgr := wm.NewManager(wm.Options{
		Layout:          testLayout(),
		Timing:          wm.DefaultTiming(),
		Viewport:        geometry.Size{Width: 1000, Height: 700},
		AddressTemplate: "portfolio.studio/{project}",
		ImageTemplate:   "avodot/{project}.png",
	})
	fixed := time.Date(2026, 3, 2, 9, 41, 0, 0, time.UTC)
	m := newModel(context.Background(), Options{
		Desk:     &managerDesk{mgr: mgr},
		Projects: testProjects(),
		Now:      func() time.Time { return fixed },
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 63})
	return m, mgr
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func press(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_ScreenMatchesTestLayout(t *testing.T) {
	m, _ := newTestModel(t)
	if got := m.screen(); got != testScreen() {
		t.Fatalf("screen = %+v, want %+v", got, testScreen())
	}
}

func TestModel_DigitOpensCatalogEntry(t *testing.T) {
	m, mgr := newTestModel(t)

	m = update(t, m, keyRune('1'))
	id, ok := mgr.Lookup("about")
	if !ok {
		t.Fatal("expected about to be open")
	}
	if mgr.Active() != id || len(m.windows) != 1 {
		t.Fatalf("expected snapshot of one active window, got %+v", m.windows)
	}

	m = update(t, m, keyRune('9'))
	if mgr.Len() != 1 {
		t.Fatalf("digit past the catalog should do nothing, have %d windows", mgr.Len())
	}
}

func TestModel_DragAndResizeWithMouse(t *testing.T) {
	m, mgr := newTestModel(t)
	m = update(t, m, keyRune('1'))
	id, _ := mgr.Lookup("about")

	m = update(t, m, press(25, 7))
	if !mgr.Dragging(id) {
		t.Fatal("expected title press to start a drag")
	}
	m = update(t, m, motion(35, 12))
	m = update(t, m, release(35, 12))
	if mgr.Dragging(id) || m.gesture.kind != gestureNone {
		t.Fatal("expected release to end the drag")
	}
	w, _ := mgr.Window(id)
	if w.Geometry.Origin() != (geometry.Point{X: 200, Y: 130}) {
		t.Fatalf("origin after drag = %v", w.Geometry.Origin())
	}

	m = update(t, m, press(59, 41))
	if !mgr.Resizing(id) {
		t.Fatal("expected grip press to start a resize")
	}
	m = update(t, m, motion(69, 51))
	m = update(t, m, release(69, 51))
	w, _ = mgr.Window(id)
	if w.Geometry != (geometry.Rect{X: 200, Y: 130, Width: 500, Height: 400}) {
		t.Fatalf("geometry after resize = %v", w.Geometry)
	}
	if m.windows[0].Geometry != w.Geometry {
		t.Fatal("expected snapshot to follow the resize")
	}
}

func TestModel_ButtonsAndDock(t *testing.T) {
	m, mgr := newTestModel(t)
	m = update(t, m, keyRune('1'))
	about, _ := mgr.Lookup("about")

	// Maximize button of the window at (100,80).
	m = update(t, m, press(19, 7))
	w, _ := mgr.Window(about)
	if !w.Maximized || w.Geometry != (geometry.Rect{X: 0, Y: 20, Width: 1000, Height: 600}) {
		t.Fatalf("expected maximized window, got %+v", w)
	}

	m = update(t, m, press(12, 61))
	gallery, ok := mgr.Lookup("gallery")
	if !ok || mgr.Active() != gallery {
		t.Fatal("expected dock click to open and focus gallery")
	}

	// Gallery sits at (150,130), so its close button starts at col 16.
	m = update(t, m, press(16, 12))
	if _, ok := mgr.Window(gallery); ok {
		t.Fatal("expected gallery to be closed")
	}
	if len(m.windows) != 1 {
		t.Fatalf("expected one window left in the snapshot, got %d", len(m.windows))
	}

	// Pressing the maximized window's body focuses it.
	m = update(t, m, press(50, 30))
	if mgr.Active() != about {
		t.Fatal("expected body press to focus about")
	}

	m = update(t, m, press(1+minimizeCol, 1))
	w, _ = mgr.Window(about)
	if w.Visibility != wm.VisibilityMinimized {
		t.Fatalf("expected minimize button to minimize, got %s", w.Visibility)
	}
	if !strings.Contains(m.View(), "1 About") {
		t.Fatal("expected dock entry in view")
	}
}

func TestModel_PressOnMaximizedTitleDoesNotDrag(t *testing.T) {
	m, mgr := newTestModel(t)
	m = update(t, m, keyRune('1'))
	id, _ := mgr.Lookup("about")
	m = update(t, m, press(19, 7))

	m = update(t, m, press(40, 1))
	if mgr.Dragging(id) || m.gesture.kind != gestureNone {
		t.Fatal("maximized windows must not start a drag")
	}
}

func TestModel_QuitAndClock(t *testing.T) {
	m, _ := newTestModel(t)
	if !strings.Contains(m.View(), "Mon 09:41") {
		t.Fatal("expected clock in menu bar")
	}

	next, cmd := m.Update(tickMsg(time.Date(2026, 3, 3, 10, 5, 0, 0, time.UTC)))
	if cmd == nil {
		t.Fatal("expected tick to schedule the next tick")
	}
	if !strings.Contains(next.(model).View(), "Tue 10:05") {
		t.Fatal("expected clock to advance")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestRenderDesktop(t *testing.T) {
	s := testScreen()
	windows := []wm.Window{
		{ID: 1, Project: "about", Title: "About", Address: "portfolio.studio/about", Active: true,
			Geometry: geometry.Rect{X: 100, Y: 80, Width: 400, Height: 300}},
		{ID: 2, Project: "gallery", Title: "Gallery", Visibility: wm.VisibilityMinimized,
			Geometry: geometry.Rect{X: 500, Y: 300, Width: 400, Height: 300}},
	}
	c := renderDesktop(frame{
		screen:  s,
		windows: windows,
		dock:    dockLayout(testProjects(), windows, s.cols),
		menu:    "About",
		clock:   "Mon 09:41",
	})

	if got := c.plain(0); !strings.HasPrefix(got, " studiowm  About") || !strings.HasSuffix(got, "Mon 09:41 ") {
		t.Fatalf("menu bar = %q", got)
	}
	if got := c.plain(7); !strings.Contains(got, "[x][-][+] About") {
		t.Fatalf("title row = %q", got)
	}
	if got := c.plain(8); !strings.Contains(got, "portfolio.studio/about") {
		t.Fatalf("address row = %q", got)
	}
	if got := c.plain(36); !strings.Contains(got, "└") || !strings.Contains(got, "◢") {
		t.Fatalf("bottom row = %q", got)
	}
	if got := c.plain(29); strings.Contains(got, "[x]") {
		t.Fatalf("minimized window should not be drawn: %q", got)
	}
	if got := c.plain(61); !strings.Contains(got, "1 About") || !strings.Contains(got, "2 Gallery") {
		t.Fatalf("dock row = %q", got)
	}
}
