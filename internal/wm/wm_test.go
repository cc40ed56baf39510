package wm

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/1broseidon/studiowm/internal/clock"
	"github.com/1broseidon/studiowm/internal/geometry"
)

type recorder struct {
	events []Event
}

func (r *recorder) HandleEvent(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recorder) count(kind EventKind, id WindowID) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind && e.WindowID == id {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.events = nil
}

func newTestManager(t *testing.T) (*Manager, *clock.Fake, *recorder) {
	t.Helper()
	fake := clock.NewFake()
	rec := &recorder{}
	mgr := NewManager(Options{
		Layout:          DefaultLayout(),
		Timing:          DefaultTiming(),
		Viewport:        geometry.Size{Width: 1440, Height: 900},
		AddressTemplate: "portfolio.studio/{project}",
		ImageTemplate:   "avodot/{project}.png",
		Scheduler:       fake,
		Listener:        rec,
	})
	return mgr, fake, rec
}

func mustWindow(t *testing.T, mgr *Manager, id WindowID) Window {
	t.Helper()
	w, ok := mgr.Window(id)
	if !ok {
		t.Fatalf("window %d not found", id)
	}
	return w
}

func TestScenario_OpenFocusCascade(t *testing.T) {
	mgr, _, rec := newTestManager(t)

	id := mgr.Open("blog", "Blog")
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}
	w := mustWindow(t, mgr, id)
	if want := (geometry.Rect{X: 100, Y: 80, Width: 800, Height: 600}); w.Geometry != want {
		t.Fatalf("geometry = %+v, want %+v", w.Geometry, want)
	}
	if w.ZOrder != 1 {
		t.Fatalf("zOrder = %d, want 1", w.ZOrder)
	}
	if w.Visibility != VisibilityNormal || w.Maximized || !w.Active {
		t.Fatalf("unexpected state: %+v", w)
	}
	if w.Address != "portfolio.studio/blog" || w.Image != "avodot/blog.png" {
		t.Fatalf("content = %q %q", w.Address, w.Image)
	}
	if want := []EventKind{EventOpened, EventFocused}; !reflect.DeepEqual(rec.kinds(), want) {
		t.Fatalf("events = %v, want %v", rec.kinds(), want)
	}

	// Opening the same project focuses instead of creating.
	again := mgr.Open("blog", "Blog")
	if again != 1 {
		t.Fatalf("reopen id = %d, want 1", again)
	}
	if mgr.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", mgr.Len())
	}
	if z := mustWindow(t, mgr, 1).ZOrder; z != 2 {
		t.Fatalf("zOrder after reopen = %d, want 2", z)
	}

	cv := mgr.Open("cv", "CV")
	if cv != 2 {
		t.Fatalf("cv id = %d, want 2", cv)
	}
	if got := mustWindow(t, mgr, cv).Geometry; got.X != 150 || got.Y != 130 {
		t.Fatalf("cv origin = (%d,%d), want (150,130)", got.X, got.Y)
	}
	if mgr.Active() != cv || mustWindow(t, mgr, 1).Active {
		t.Fatalf("expected cv to be the only active window")
	}
}

func TestScenario_MinimizeThenReopenRestores(t *testing.T) {
	mgr, fake, rec := newTestManager(t)
	mgr.Open("blog", "Blog")
	cv := mgr.Open("cv", "CV")
	before := mustWindow(t, mgr, cv).Geometry

	mgr.Minimize(cv)
	if w := mustWindow(t, mgr, cv); w.Visibility != VisibilityNormal || !w.Minimizing {
		t.Fatalf("expected minimizing cue before delay, got %+v", w)
	}

	fake.Advance(399 * time.Millisecond)
	if w := mustWindow(t, mgr, cv); w.Visibility != VisibilityNormal {
		t.Fatalf("minimized too early: %+v", w)
	}
	fake.Advance(time.Millisecond)
	if w := mustWindow(t, mgr, cv); w.Visibility != VisibilityMinimized || w.Minimizing {
		t.Fatalf("expected minimized, got %+v", w)
	}

	rec.reset()
	if id := mgr.Open("cv", "CV"); id != cv {
		t.Fatalf("reopen id = %d, want %d", id, cv)
	}
	if mgr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", mgr.Len())
	}
	w := mustWindow(t, mgr, cv)
	if w.Visibility != VisibilityNormal {
		t.Fatalf("expected restore to normal, got %v", w.Visibility)
	}
	if w.Geometry != before {
		t.Fatalf("geometry changed across minimize: %+v -> %+v", before, w.Geometry)
	}
	if want := []EventKind{EventFocused, EventRestored}; !reflect.DeepEqual(rec.kinds(), want) {
		t.Fatalf("events = %v, want %v", rec.kinds(), want)
	}
}

func TestScenario_MaximizeRoundTrip(t *testing.T) {
	mgr, fake, rec := newTestManager(t)
	id := mgr.Open("blog", "Blog")

	mgr.ToggleMaximize(id)
	w := mustWindow(t, mgr, id)
	if want := (geometry.Rect{X: 0, Y: 28, Width: 1440, Height: 900 - 28 - 86}); w.Geometry != want {
		t.Fatalf("maximized geometry = %+v, want %+v", w.Geometry, want)
	}
	if !w.Maximized || w.SavedGeometry == nil || !w.Maximizing {
		t.Fatalf("unexpected maximized state: %+v", w)
	}
	if *w.SavedGeometry != (geometry.Rect{X: 100, Y: 80, Width: 800, Height: 600}) {
		t.Fatalf("saved geometry = %+v", *w.SavedGeometry)
	}

	fake.Advance(300 * time.Millisecond)
	if mustWindow(t, mgr, id).Maximizing {
		t.Fatal("expected maximizing cue to clear after settle delay")
	}
	if rec.count(EventMaximizeSettled, id) != 1 {
		t.Fatalf("expected one maximize-settled event, got %v", rec.kinds())
	}

	mgr.ToggleMaximize(id)
	w = mustWindow(t, mgr, id)
	if want := (geometry.Rect{X: 100, Y: 80, Width: 800, Height: 600}); w.Geometry != want {
		t.Fatalf("restored geometry = %+v, want %+v", w.Geometry, want)
	}
	if w.Maximized || w.SavedGeometry != nil {
		t.Fatalf("expected saved geometry cleared, got %+v", w)
	}
}

func TestScenario_CloseIsFinal(t *testing.T) {
	mgr, fake, rec := newTestManager(t)
	id := mgr.Open("blog", "Blog")
	z := mustWindow(t, mgr, id).ZOrder

	mgr.Close(id)
	rec.reset()
	mgr.Focus(id)
	if len(rec.events) != 0 {
		t.Fatalf("focus on closing window emitted %v", rec.kinds())
	}
	w := mustWindow(t, mgr, id)
	if w.ZOrder != z || w.Visibility != VisibilityClosing {
		t.Fatalf("closing window changed: %+v", w)
	}

	fake.Advance(200 * time.Millisecond)
	if _, ok := mgr.Window(id); ok {
		t.Fatal("expected window removed after close delay")
	}
	if mgr.Active() != 0 {
		t.Fatalf("Active() = %d, want 0", mgr.Active())
	}
	if want := []EventKind{EventClosed}; !reflect.DeepEqual(rec.kinds(), want) {
		t.Fatalf("events = %v, want %v", rec.kinds(), want)
	}

	rec.reset()
	mgr.Focus(id)
	mgr.Minimize(id)
	mgr.ToggleMaximize(id)
	mgr.Close(id)
	mgr.BeginDrag(id, geometry.Point{})
	mgr.UpdateDrag(id, geometry.Point{X: 10, Y: 10})
	fake.Advance(time.Second)
	if len(rec.events) != 0 {
		t.Fatalf("operations on removed window emitted %v", rec.kinds())
	}
}

func TestCloseDoesNotReassignFocusOrZOrder(t *testing.T) {
	mgr, fake, _ := newTestManager(t)
	a := mgr.Open("a", "A")
	b := mgr.Open("b", "B")
	za := mustWindow(t, mgr, a).ZOrder

	mgr.Close(b)
	fake.Advance(200 * time.Millisecond)

	w := mustWindow(t, mgr, a)
	if w.ZOrder != za {
		t.Fatalf("zOrder of other window changed: %d -> %d", za, w.ZOrder)
	}
	if w.Active || mgr.Active() != 0 {
		t.Fatal("expected no window to be auto-focused after close")
	}
}

func TestOpenNeverDuplicatesProject(t *testing.T) {
	mgr, fake, _ := newTestManager(t)
	projects := []string{"blog", "cv", "blog", "shop", "cv", "cv", "blog", "shop"}
	for _, p := range projects {
		mgr.Open(p, p)
		seen := map[string]int{}
		for _, w := range mgr.Windows() {
			if w.Visibility == VisibilityClosing {
				continue
			}
			seen[w.Project]++
			if seen[w.Project] > 1 {
				t.Fatalf("project %q has %d live windows", w.Project, seen[w.Project])
			}
		}
	}
	if mgr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", mgr.Len())
	}

	// A closing window no longer owns its project.
	blog, _ := mgr.Lookup("blog")
	mgr.Close(blog)
	fresh := mgr.Open("blog", "Blog")
	if fresh == blog {
		t.Fatalf("expected a new window while %d is closing", blog)
	}
	fake.Advance(200 * time.Millisecond)
	if _, ok := mgr.Window(blog); ok {
		t.Fatal("expected closing window removed")
	}
	if id, ok := mgr.Lookup("blog"); !ok || id != fresh {
		t.Fatalf("Lookup(blog) = %d,%v want %d", id, ok, fresh)
	}
}

func TestZOrderDistinctAndTopmostIsFocused(t *testing.T) {
	mgr, fake, _ := newTestManager(t)
	ids := []WindowID{
		mgr.Open("a", "A"),
		mgr.Open("b", "B"),
		mgr.Open("c", "C"),
	}
	ops := []func(){
		func() { mgr.Focus(ids[0]) },
		func() { mgr.Open("b", "B") },
		func() { mgr.Minimize(ids[2]) },
		func() { mgr.Focus(ids[2]) },
		func() { mgr.ToggleMaximize(ids[0]) },
		func() { mgr.Focus(ids[1]) },
		func() { mgr.Focus(42) },
	}

	for i, op := range ops {
		op()
		fake.Advance(500 * time.Millisecond)

		windows := mgr.Windows()
		seen := map[int]bool{}
		maxZ := 0
		var top WindowID
		for _, w := range windows {
			if seen[w.ZOrder] {
				t.Fatalf("step %d: duplicate zOrder %d", i, w.ZOrder)
			}
			seen[w.ZOrder] = true
			if w.ZOrder > maxZ {
				maxZ = w.ZOrder
				top = w.ID
			}
		}
		if top != mgr.Active() {
			t.Fatalf("step %d: topmost %d but active %d", i, top, mgr.Active())
		}
		if windows[len(windows)-1].ID != top {
			t.Fatalf("step %d: Windows() not in ascending z-order", i)
		}
	}
}

func TestFocusMinimizedWindowRaisesWithoutRestoring(t *testing.T) {
	mgr, fake, _ := newTestManager(t)
	a := mgr.Open("a", "A")
	mgr.Open("b", "B")
	mgr.Minimize(a)
	fake.Advance(400 * time.Millisecond)

	mgr.Focus(a)
	w := mustWindow(t, mgr, a)
	if !w.Active || w.Visibility != VisibilityMinimized {
		t.Fatalf("unexpected state: %+v", w)
	}
}

func TestCascadeWrapsEachAxisIndependently(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	want := []geometry.Point{
		{X: 100, Y: 80},
		{X: 150, Y: 130},
		{X: 200, Y: 180},
		{X: 250, Y: 230},
		{X: 300, Y: 280},
		{X: 350, Y: 80},
		{X: 400, Y: 130},
		{X: 100, Y: 180},
	}
	for i, p := range want {
		id := mgr.Open(string(rune('a'+i)), "")
		if got := mustWindow(t, mgr, id).Geometry.Origin(); got != p {
			t.Fatalf("window %d origin = %+v, want %+v", i, got, p)
		}
	}
}

func TestResizeNeverBelowFloor(t *testing.T) {
	tests := []struct {
		name   string
		deltas []geometry.Point
		want   geometry.Size
	}{
		{"grow", []geometry.Point{{X: 100, Y: 50}}, geometry.Size{Width: 900, Height: 650}},
		{"shrink within floor", []geometry.Point{{X: -300, Y: -200}}, geometry.Size{Width: 500, Height: 400}},
		{"shrink past floor", []geometry.Point{{X: -700, Y: -700}}, geometry.Size{Width: 400, Height: 300}},
		{"mixed axes", []geometry.Point{{X: 50, Y: -1000}}, geometry.Size{Width: 850, Height: 300}},
		{"recover after overshoot", []geometry.Point{{X: -2000, Y: -2000}, {X: -350, Y: -250}}, geometry.Size{Width: 450, Height: 350}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr, _, _ := newTestManager(t)
			id := mgr.Open("blog", "Blog")
			start := geometry.Point{X: 900, Y: 680}

			mgr.BeginResize(id, start)
			for _, d := range tt.deltas {
				mgr.UpdateResize(id, start.Add(d))
				w := mustWindow(t, mgr, id)
				if w.Geometry.Width < 400 || w.Geometry.Height < 300 {
					t.Fatalf("geometry below floor: %+v", w.Geometry)
				}
			}
			mgr.EndResize(id)

			w := mustWindow(t, mgr, id)
			if w.Geometry.Size() != tt.want {
				t.Fatalf("size = %+v, want %+v", w.Geometry.Size(), tt.want)
			}
			if w.Geometry.Origin() != (geometry.Point{X: 100, Y: 80}) {
				t.Fatalf("resize moved the window: %+v", w.Geometry)
			}
			if mgr.Resizing(id) {
				t.Fatal("expected resize to be finished")
			}
		})
	}
}

func TestDragClampsToTopInset(t *testing.T) {
	mgr, _, rec := newTestManager(t)
	id := mgr.Open("blog", "Blog")
	start := geometry.Point{X: 500, Y: 500}

	mgr.BeginDrag(id, start)
	if !mgr.Dragging(id) {
		t.Fatal("expected drag in progress")
	}

	mgr.UpdateDrag(id, geometry.Point{X: 450, Y: 300})
	if got := mustWindow(t, mgr, id).Geometry.Origin(); got != (geometry.Point{X: 50, Y: 28}) {
		t.Fatalf("origin = %+v, want (50,28)", got)
	}

	mgr.UpdateDrag(id, geometry.Point{X: -1000, Y: 600})
	if got := mustWindow(t, mgr, id).Geometry.Origin(); got != (geometry.Point{X: -1400, Y: 180}) {
		t.Fatalf("origin = %+v, want (-1400,180)", got)
	}

	mgr.EndDrag(id)
	rec.reset()
	mgr.UpdateDrag(id, geometry.Point{X: 0, Y: 0})
	if len(rec.events) != 0 {
		t.Fatalf("update after EndDrag emitted %v", rec.kinds())
	}
	if got := mustWindow(t, mgr, id).Geometry.Size(); got != (geometry.Size{Width: 800, Height: 600}) {
		t.Fatalf("drag changed size: %+v", got)
	}
}

func TestDragRestartReanchors(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	id := mgr.Open("blog", "Blog")

	mgr.BeginDrag(id, geometry.Point{X: 0, Y: 0})
	mgr.UpdateDrag(id, geometry.Point{X: 10, Y: 10})
	mgr.BeginDrag(id, geometry.Point{X: 100, Y: 100})
	mgr.UpdateDrag(id, geometry.Point{X: 110, Y: 100})

	if got := mustWindow(t, mgr, id).Geometry.Origin(); got != (geometry.Point{X: 120, Y: 90}) {
		t.Fatalf("origin = %+v, want (120,90)", got)
	}
}

func TestDragAnchorsArePerWindowAndIndependentOfFocus(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	a := mgr.Open("a", "A")
	b := mgr.Open("b", "B")

	mgr.BeginDrag(a, geometry.Point{X: 0, Y: 0})
	if mgr.Active() != b {
		t.Fatal("BeginDrag must not change focus")
	}
	mgr.UpdateDrag(b, geometry.Point{X: 300, Y: 300})
	if got := mustWindow(t, mgr, b).Geometry.Origin(); got != (geometry.Point{X: 150, Y: 130}) {
		t.Fatalf("window without a drag moved: %+v", got)
	}

	mgr.Focus(b)
	mgr.UpdateDrag(a, geometry.Point{X: 20, Y: 30})
	if got := mustWindow(t, mgr, a).Geometry.Origin(); got != (geometry.Point{X: 120, Y: 110}) {
		t.Fatalf("origin = %+v, want (120,110)", got)
	}
}

func TestMaximizedWindowIgnoresDragAndResize(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	id := mgr.Open("blog", "Blog")
	mgr.ToggleMaximize(id)
	maxed := mustWindow(t, mgr, id).Geometry

	mgr.BeginDrag(id, geometry.Point{})
	mgr.UpdateDrag(id, geometry.Point{X: 200, Y: 200})
	mgr.BeginResize(id, geometry.Point{})
	mgr.UpdateResize(id, geometry.Point{X: -500, Y: -500})

	if got := mustWindow(t, mgr, id).Geometry; got != maxed {
		t.Fatalf("maximized geometry changed: %+v -> %+v", maxed, got)
	}
	if mgr.Dragging(id) || mgr.Resizing(id) {
		t.Fatal("expected drag and resize to be rejected")
	}
}

func TestMaximizeDuringDragEndsIt(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	id := mgr.Open("blog", "Blog")
	mgr.BeginDrag(id, geometry.Point{})
	mgr.ToggleMaximize(id)
	mgr.UpdateDrag(id, geometry.Point{X: 50, Y: 50})

	if got := mustWindow(t, mgr, id).Geometry; got.X != 0 || got.Y != 28 {
		t.Fatalf("maximized window moved: %+v", got)
	}
	mgr.ToggleMaximize(id)
	if got := mustWindow(t, mgr, id).Geometry.Origin(); got != (geometry.Point{X: 100, Y: 80}) {
		t.Fatalf("restore geometry = %+v", got)
	}
}

func TestPendingTimersAreGuardedAfterClose(t *testing.T) {
	mgr, fake, rec := newTestManager(t)
	id := mgr.Open("blog", "Blog")

	mgr.Minimize(id)
	mgr.ToggleMaximize(id)
	mgr.Close(id)
	fake.Advance(time.Second)

	if rec.count(EventMinimized, id) != 0 {
		t.Fatal("minimize completed on a closed window")
	}
	if rec.count(EventMaximizeSettled, id) != 0 {
		t.Fatal("maximize settled on a closed window")
	}
	if rec.count(EventClosed, id) != 1 {
		t.Fatalf("expected exactly one closed event, got %v", rec.kinds())
	}
	if fake.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", fake.Pending())
	}
}

func TestRestoreDuringMinimizeVoidsTimer(t *testing.T) {
	mgr, fake, rec := newTestManager(t)
	id := mgr.Open("blog", "Blog")

	mgr.Minimize(id)
	fake.Advance(100 * time.Millisecond)
	mgr.Restore(id)
	fake.Advance(time.Second)

	w := mustWindow(t, mgr, id)
	if w.Visibility != VisibilityNormal || w.Minimizing {
		t.Fatalf("expected window to stay restored, got %+v", w)
	}
	if rec.count(EventMinimized, id) != 0 {
		t.Fatal("stale minimize timer fired")
	}

	// A fresh minimize still works afterwards.
	mgr.Minimize(id)
	fake.Advance(400 * time.Millisecond)
	if mustWindow(t, mgr, id).Visibility != VisibilityMinimized {
		t.Fatal("expected second minimize to complete")
	}
}

func TestRestoreIgnoresNormalWindows(t *testing.T) {
	mgr, _, rec := newTestManager(t)
	a := mgr.Open("a", "A")
	mgr.Open("b", "B")
	rec.reset()

	mgr.Restore(a)
	if len(rec.events) != 0 {
		t.Fatalf("restore of normal window emitted %v", rec.kinds())
	}
}

func TestMinimizeIsIdempotent(t *testing.T) {
	mgr, fake, rec := newTestManager(t)
	id := mgr.Open("blog", "Blog")

	mgr.Minimize(id)
	mgr.Minimize(id)
	fake.Advance(400 * time.Millisecond)
	mgr.Minimize(id)
	fake.Advance(400 * time.Millisecond)

	if rec.count(EventMinimizing, id) != 1 || rec.count(EventMinimized, id) != 1 {
		t.Fatalf("events = %v", rec.kinds())
	}
}

func TestRapidMaximizeTogglesSettleOnce(t *testing.T) {
	mgr, fake, rec := newTestManager(t)
	id := mgr.Open("blog", "Blog")

	mgr.ToggleMaximize(id)
	fake.Advance(100 * time.Millisecond)
	mgr.ToggleMaximize(id)
	fake.Advance(250 * time.Millisecond)
	if !mustWindow(t, mgr, id).Maximizing {
		t.Fatal("first settle timer cleared the second transition cue")
	}
	fake.Advance(50 * time.Millisecond)

	if rec.count(EventMaximizing, id) != 2 || rec.count(EventMaximizeSettled, id) != 1 {
		t.Fatalf("events = %v", rec.kinds())
	}
}

func TestSetViewportUpdatesMaximizedWindows(t *testing.T) {
	mgr, _, rec := newTestManager(t)
	a := mgr.Open("a", "A")
	b := mgr.Open("b", "B")
	mgr.ToggleMaximize(a)
	rec.reset()

	mgr.SetViewport(geometry.Size{Width: 1920, Height: 1080})

	if got := mustWindow(t, mgr, a).Geometry; got != (geometry.Rect{X: 0, Y: 28, Width: 1920, Height: 966}) {
		t.Fatalf("maximized geometry = %+v", got)
	}
	if got := mustWindow(t, mgr, b).Geometry; got != (geometry.Rect{X: 150, Y: 130, Width: 800, Height: 600}) {
		t.Fatalf("normal window changed: %+v", got)
	}
	if want := []EventKind{EventGeometryChanged}; !reflect.DeepEqual(rec.kinds(), want) {
		t.Fatalf("events = %v, want %v", rec.kinds(), want)
	}

	mgr.ToggleMaximize(a)
	if got := mustWindow(t, mgr, a).Geometry; got != (geometry.Rect{X: 100, Y: 80, Width: 800, Height: 600}) {
		t.Fatalf("restore after viewport change = %+v", got)
	}
}

func TestZBaseSeedsCounter(t *testing.T) {
	mgr := NewManager(Options{Layout: DefaultLayout(), Timing: DefaultTiming(), ZBase: 100})
	id := mgr.Open("blog", "Blog")
	if z := mustWindow(t, mgr, id).ZOrder; z != 101 {
		t.Fatalf("zOrder = %d, want 101", z)
	}
}

func TestNilSchedulerCompletesImmediately(t *testing.T) {
	mgr := NewManager(Options{Layout: DefaultLayout(), Timing: DefaultTiming()})
	id := mgr.Open("blog", "Blog")

	mgr.Minimize(id)
	if w := mustWindow(t, mgr, id); w.Visibility != VisibilityMinimized {
		t.Fatalf("visibility = %v, want minimized", w.Visibility)
	}
	mgr.Close(id)
	if mgr.Len() != 0 {
		t.Fatal("expected immediate removal")
	}
}

func TestEventJSON(t *testing.T) {
	e := Event{
		Kind:       EventMaximizeSettled,
		WindowID:   3,
		Project:    "cv",
		Geometry:   geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4},
		Visibility: VisibilityMinimized,
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["kind"] != "maximize-settled" || raw["visibility"] != "minimized" {
		t.Fatalf("unexpected encoding: %s", data)
	}

	var back Event
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != e {
		t.Fatalf("decoded %+v, want %+v", back, e)
	}

	if err := json.Unmarshal([]byte(`{"kind":"exploded"}`), &back); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
