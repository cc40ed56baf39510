package wm

import (
	"fmt"
	"time"

	"github.com/1broseidon/studiowm/internal/geometry"
)

// WindowID identifies a window for the lifetime of a Manager. Zero is never
// assigned.
type WindowID uint64

// Visibility is the display state of a window.
type Visibility int

const (
	// VisibilityNormal means the window is shown.
	VisibilityNormal Visibility = iota
	// VisibilityMinimized means the window is hidden in the dock.
	VisibilityMinimized
	// VisibilityClosing means the close transition is running. It is terminal.
	VisibilityClosing
)

// String returns the string representation of the visibility
func (v Visibility) String() string {
	switch v {
	case VisibilityNormal:
		return "normal"
	case VisibilityMinimized:
		return "minimized"
	case VisibilityClosing:
		return "closing"
	default:
		return "unknown"
	}
}

func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Visibility) UnmarshalText(text []byte) error {
	switch string(text) {
	case "normal":
		*v = VisibilityNormal
	case "minimized":
		*v = VisibilityMinimized
	case "closing":
		*v = VisibilityClosing
	default:
		return fmt.Errorf("unknown visibility %q", text)
	}
	return nil
}

// Window is a snapshot of one open window.
type Window struct {
	ID            WindowID       `json:"id"`
	Project       string         `json:"project"`
	Title         string         `json:"title"`
	Address       string         `json:"address,omitempty"`
	Image         string         `json:"image,omitempty"`
	Geometry      geometry.Rect  `json:"geometry"`
	SavedGeometry *geometry.Rect `json:"saved_geometry,omitempty"`
	ZOrder        int            `json:"z_order"`
	Visibility    Visibility     `json:"visibility"`
	Maximized     bool           `json:"maximized"`
	Active        bool           `json:"active"`

	// Transition cues for presentation.
	Minimizing bool `json:"minimizing,omitempty"`
	Maximizing bool `json:"maximizing,omitempty"`
}

// Layout holds the geometry constants shared with presentation.
type Layout struct {
	TopInset     int            // reserved menu bar band
	BottomInset  int            // reserved dock band
	MinWidth     int
	MinHeight    int
	DefaultSize  geometry.Size  // size of a newly opened window
	CascadeBase  geometry.Point // first window's top-left corner
	CascadeStep  geometry.Point
	CascadeReset geometry.Point // an axis wraps to its base once it exceeds this
}

// DefaultLayout returns the stock desktop layout.
func DefaultLayout() Layout {
	return Layout{
		TopInset:     28,
		BottomInset:  86,
		MinWidth:     400,
		MinHeight:    300,
		DefaultSize:  geometry.Size{Width: 800, Height: 600},
		CascadeBase:  geometry.Point{X: 100, Y: 80},
		CascadeStep:  geometry.Point{X: 50, Y: 50},
		CascadeReset: geometry.Point{X: 400, Y: 300},
	}
}

// Timing holds the transition delays. They must match the presentation's
// animation durations.
type Timing struct {
	CloseDelay     time.Duration
	MinimizeDelay  time.Duration
	MaximizeSettle time.Duration
}

// DefaultTiming returns the stock transition delays.
func DefaultTiming() Timing {
	return Timing{
		CloseDelay:     200 * time.Millisecond,
		MinimizeDelay:  400 * time.Millisecond,
		MaximizeSettle: 300 * time.Millisecond,
	}
}

type window struct {
	id         WindowID
	project    string
	title      string
	address    string
	image      string
	geometry   geometry.Rect
	saved      *geometry.Rect
	zOrder     int
	visibility Visibility
	maximized  bool

	// A pending timer only applies if the sequence it captured is still
	// current when it fires.
	minimizing  bool
	minimizeSeq uint64
	maximizing  bool
	maximizeSeq uint64
}

func (w *window) snapshot(active WindowID) Window {
	out := Window{
		ID:         w.id,
		Project:    w.project,
		Title:      w.title,
		Address:    w.address,
		Image:      w.image,
		Geometry:   w.geometry,
		ZOrder:     w.zOrder,
		Visibility: w.visibility,
		Maximized:  w.maximized,
		Active:     w.id == active,
		Minimizing: w.minimizing,
		Maximizing: w.maximizing,
	}
	if w.saved != nil {
		saved := *w.saved
		out.SavedGeometry = &saved
	}
	return out
}
