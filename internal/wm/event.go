package wm

import (
	"fmt"

	"github.com/1broseidon/studiowm/internal/geometry"
)

// EventKind names a lifecycle notification.
type EventKind int

const (
	EventOpened EventKind = iota
	EventFocused
	EventClosing
	EventClosed
	EventMinimizing
	EventMinimized
	EventRestored
	EventMaximizing
	EventMaximizeSettled
	EventGeometryChanged
)

var eventKindNames = map[EventKind]string{
	EventOpened:          "opened",
	EventFocused:         "focused",
	EventClosing:         "closing",
	EventClosed:          "closed",
	EventMinimizing:      "minimizing",
	EventMinimized:       "minimized",
	EventRestored:        "restored",
	EventMaximizing:      "maximizing",
	EventMaximizeSettled: "maximize-settled",
	EventGeometryChanged: "geometry-changed",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(text []byte) error {
	for kind, name := range eventKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", text)
}

// Event is a fire-and-forget notification for presentation. It carries the
// window's state right after the transition so a renderer never has to read
// back live positions.
type Event struct {
	Kind       EventKind     `json:"kind"`
	WindowID   WindowID      `json:"window_id"`
	Project    string        `json:"project"`
	Title      string        `json:"title"`
	Geometry   geometry.Rect `json:"geometry"`
	Visibility Visibility    `json:"visibility"`
	Maximized  bool          `json:"maximized"`
}

// Listener receives notifications. HandleEvent runs on the Manager's
// goroutine and must not call back into the Manager.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) {
	f(e)
}
