package x11

import (
	"context"
	"sync"

	"github.com/1broseidon/studiowm/internal/geometry"
)

// ViewportSource reads the primary monitor size, keeping one X connection
// open between calls and reconnecting after a failure.
type ViewportSource struct {
	display string

	mu   sync.Mutex
	conn *Connection
}

func NewViewportSource(display string) *ViewportSource {
	return &ViewportSource{display: display}
}

// Probe matches daemon.ViewportProbe.
func (v *ViewportSource) Probe(ctx context.Context) (geometry.Size, error) {
	if err := ctx.Err(); err != nil {
		return geometry.Size{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.conn == nil {
		conn, err := NewConnection(v.display)
		if err != nil {
			return geometry.Size{}, err
		}
		v.conn = conn
	}

	size, err := v.conn.PrimaryViewport()
	if err != nil {
		v.conn.Close()
		v.conn = nil
		return geometry.Size{}, err
	}
	return size, nil
}

func (v *ViewportSource) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.conn != nil {
		v.conn.Close()
		v.conn = nil
	}
}
