package wm

import "github.com/1broseidon/studiowm/internal/geometry"

// BeginDrag anchors a move of id at pointer p. Maximized windows cannot be
// dragged. Beginning again while a drag is active re-anchors it.
func (m *Manager) BeginDrag(id WindowID, p geometry.Point) {
	w := m.live(id)
	if w == nil {
		m.ignored("begin-drag", id, "unknown window")
		return
	}
	if w.maximized {
		m.ignored("begin-drag", id, "maximized")
		return
	}
	m.drags[id] = dragAnchor{pointer: p, origin: w.geometry.Origin()}
}

// UpdateDrag moves id by the pointer delta since BeginDrag. The window never
// rises above the top inset; x is unclamped.
func (m *Manager) UpdateDrag(id WindowID, p geometry.Point) {
	anchor, ok := m.drags[id]
	if !ok {
		return
	}
	w := m.live(id)
	if w == nil {
		delete(m.drags, id)
		return
	}
	if w.maximized {
		return
	}

	pos := anchor.origin.Add(p.Sub(anchor.pointer))
	pos.Y = geometry.AtLeast(pos.Y, m.layout.TopInset)
	next := w.geometry.MoveTo(pos)
	if next == w.geometry {
		return
	}
	w.geometry = next
	m.emit(EventGeometryChanged, w)
}

// EndDrag finishes the drag in progress for id.
func (m *Manager) EndDrag(id WindowID) {
	delete(m.drags, id)
}

// Dragging reports whether a drag is in progress for id.
func (m *Manager) Dragging(id WindowID) bool {
	_, ok := m.drags[id]
	return ok
}

// BeginResize anchors a resize of id at pointer p. Maximized windows cannot
// be resized.
func (m *Manager) BeginResize(id WindowID, p geometry.Point) {
	w := m.live(id)
	if w == nil {
		m.ignored("begin-resize", id, "unknown window")
		return
	}
	if w.maximized {
		m.ignored("begin-resize", id, "maximized")
		return
	}
	m.resizes[id] = resizeAnchor{pointer: p, size: w.geometry.Size()}
}

// UpdateResize grows or shrinks id by the pointer delta since BeginResize,
// never below the minimum size. The origin does not move.
func (m *Manager) UpdateResize(id WindowID, p geometry.Point) {
	anchor, ok := m.resizes[id]
	if !ok {
		return
	}
	w := m.live(id)
	if w == nil {
		delete(m.resizes, id)
		return
	}
	if w.maximized {
		return
	}

	delta := p.Sub(anchor.pointer)
	next := w.geometry.Resize(geometry.Size{
		Width:  geometry.AtLeast(anchor.size.Width+delta.X, m.layout.MinWidth),
		Height: geometry.AtLeast(anchor.size.Height+delta.Y, m.layout.MinHeight),
	})
	if next == w.geometry {
		return
	}
	w.geometry = next
	m.emit(EventGeometryChanged, w)
}

// EndResize finishes the resize in progress for id.
func (m *Manager) EndResize(id WindowID) {
	delete(m.resizes, id)
}

// Resizing reports whether a resize is in progress for id.
func (m *Manager) Resizing(id WindowID) bool {
	_, ok := m.resizes[id]
	return ok
}
