package tui

import (
	"github.com/1broseidon/studiowm/internal/geometry"
	"github.com/1broseidon/studiowm/internal/wm"
)

const (
	menuRows = 1
	dockRows = 1

	minBoxCols = 14
	minBoxRows = 3

	// Title bar button columns, relative to the window's left edge.
	closeCol    = 1
	minimizeCol = 4
	maximizeCol = 7
	buttonWidth = 3
	titleCol    = 11
)

// screen maps between viewport pixels and terminal cells. The menu bar
// takes the first row and the dock the last; the rows between show the
// viewport band from the top inset to the bottom inset.
type screen struct {
	viewport geometry.Size
	layout   wm.Layout
	cols     int
	rows     int
}

type box struct {
	x, y, w, h int
}

func (b box) contains(col, row int) bool {
	return col >= b.x && col < b.x+b.w && row >= b.y && row < b.y+b.h
}

func (s screen) deskRows() int {
	return max(s.rows-menuRows-dockRows, 1)
}

func (s screen) deskSpan() int {
	return max(s.viewport.Height-s.layout.TopInset-s.layout.BottomInset, 1)
}

func (s screen) viewportWidth() int {
	return max(s.viewport.Width, 1)
}

func (s screen) dockRow() int {
	return s.rows - dockRows
}

func (s screen) col(x int) int {
	return floorDiv(x*max(s.cols, 1), s.viewportWidth())
}

func (s screen) row(y int) int {
	return menuRows + floorDiv((y-s.layout.TopInset)*s.deskRows(), s.deskSpan())
}

// point converts a cell back to the viewport pixel at its top-left corner.
func (s screen) point(col, row int) geometry.Point {
	return geometry.Point{
		X: floorDiv(col*s.viewportWidth(), max(s.cols, 1)),
		Y: s.layout.TopInset + floorDiv((row-menuRows)*s.deskSpan(), s.deskRows()),
	}
}

func (s screen) box(r geometry.Rect) box {
	x0, y0 := s.col(r.X), s.row(r.Y)
	x1, y1 := s.col(r.X+r.Width), s.row(r.Y+r.Height)
	return box{
		x: x0,
		y: y0,
		w: max(x1-x0, minBoxCols),
		h: max(y1-y0, minBoxRows),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

type part int

const (
	partNone part = iota
	partMenu
	partDock
	partDesktop
	partBody
	partTitle
	partClose
	partMinimize
	partMaximize
	partGrip
)

type hit struct {
	part    part
	window  wm.WindowID
	project string
}

// visible reports whether w is drawn and can be clicked.
func visible(w wm.Window) bool {
	return w.Visibility != wm.VisibilityMinimized
}

// hitTest finds what sits under a cell. windows are in ascending z-order.
func (s screen) hitTest(windows []wm.Window, dock []dockItem, col, row int) hit {
	if row < menuRows {
		return hit{part: partMenu}
	}
	if row >= s.dockRow() {
		for _, item := range dock {
			if col >= item.start && col < item.end {
				return hit{part: partDock, project: item.project}
			}
		}
		return hit{part: partDock}
	}

	for i := len(windows) - 1; i >= 0; i-- {
		w := windows[i]
		if !visible(w) {
			continue
		}
		b := s.box(w.Geometry)
		if !b.contains(col, row) {
			continue
		}
		h := hit{window: w.ID, project: w.Project}
		dx := col - b.x
		switch {
		case row == b.y && dx >= closeCol && dx < closeCol+buttonWidth:
			h.part = partClose
		case row == b.y && dx >= minimizeCol && dx < minimizeCol+buttonWidth:
			h.part = partMinimize
		case row == b.y && dx >= maximizeCol && dx < maximizeCol+buttonWidth:
			h.part = partMaximize
		case row == b.y:
			h.part = partTitle
		case row == b.y+b.h-1 && dx >= b.w-2:
			h.part = partGrip
		default:
			h.part = partBody
		}
		return h
	}
	return hit{part: partDesktop}
}
