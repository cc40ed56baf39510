package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/studiowm/internal/config"
	"github.com/1broseidon/studiowm/internal/wm"
)

type cellStyle int

const (
	styleDesktop cellStyle = iota
	styleMenu
	styleMenuApp
	styleDock
	styleDockOpen
	styleDockMinimized
	styleTitle
	styleTitleActive
	styleButton
	styleBody
	styleAddress
	styleGrip
	styleFading
)

var cellStyles = map[cellStyle]lipgloss.Style{
	styleDesktop:       lipgloss.NewStyle().Background(lipgloss.Color("235")),
	styleMenu:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237")),
	styleMenuApp:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("237")),
	styleDock:          lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")),
	styleDockOpen:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")),
	styleDockMinimized: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("60")),
	styleTitle:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("238")),
	styleTitleActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")),
	styleButton:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).Background(lipgloss.Color("238")),
	styleBody:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("234")),
	styleAddress:       lipgloss.NewStyle().Foreground(lipgloss.Color("109")).Background(lipgloss.Color("234")),
	styleGrip:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("234")),
	styleFading:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")),
}

type cell struct {
	ch    rune
	style cellStyle
}

// canvas is a fixed grid of styled runes. Writes outside it are dropped.
type canvas struct {
	cols, rows int
	cells      []cell
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' ', style: styleDesktop}
	}
	return c
}

func (c *canvas) set(col, row int, ch rune, style cellStyle) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = cell{ch: ch, style: style}
}

func (c *canvas) fill(col, row, width int, style cellStyle) {
	for i := 0; i < width; i++ {
		c.set(col+i, row, ' ', style)
	}
}

// text writes s from col, stopping before limit.
func (c *canvas) text(col, row, limit int, s string, style cellStyle) int {
	for _, r := range s {
		if col >= limit {
			break
		}
		c.set(col, row, r, style)
		col++
	}
	return col
}

// plain returns row as unstyled text, for tests and debugging.
func (c *canvas) plain(row int) string {
	var b strings.Builder
	for col := 0; col < c.cols; col++ {
		b.WriteRune(c.cells[row*c.cols+col].ch)
	}
	return b.String()
}

// String renders the canvas, styling each run of same-style cells once.
func (c *canvas) String() string {
	var out strings.Builder
	var run strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		current := c.cells[row*c.cols].style
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			if cl.style != current {
				out.WriteString(cellStyles[current].Render(run.String()))
				run.Reset()
				current = cl.style
			}
			run.WriteRune(cl.ch)
		}
		out.WriteString(cellStyles[current].Render(run.String()))
		run.Reset()
	}
	return out.String()
}

type dockItem struct {
	project   string
	label     string
	start     int
	end       int
	open      bool
	minimized bool
}

// dockLayout lays the catalog out left to right along the dock row.
// Entries that do not fit are left off.
func dockLayout(projects []config.Project, windows []wm.Window, cols int) []dockItem {
	items := make([]dockItem, 0, len(projects))
	col := 1
	for i, p := range projects {
		title := p.Title
		if strings.TrimSpace(title) == "" {
			title = p.Project
		}
		label := " " + title + " "
		if i < 9 {
			label = fmt.Sprintf(" %d %s ", i+1, title)
		}
		width := len([]rune(label))
		if col+width > cols {
			break
		}
		item := dockItem{project: p.Project, label: label, start: col, end: col + width}
		for _, w := range windows {
			if w.Project != p.Project || w.Visibility == wm.VisibilityClosing {
				continue
			}
			item.open = true
			item.minimized = w.Visibility == wm.VisibilityMinimized
		}
		items = append(items, item)
		col += width + 1
	}
	return items
}

type frame struct {
	screen  screen
	windows []wm.Window
	dock    []dockItem
	menu    string
	clock   string
	status  string
}

// renderDesktop draws the menu bar, the windows in z-order and the dock.
func renderDesktop(f frame) *canvas {
	s := f.screen
	c := newCanvas(s.cols, s.rows)

	c.fill(0, 0, s.cols, styleMenu)
	next := c.text(1, 0, s.cols, "studiowm", styleMenuApp)
	if f.menu != "" {
		c.text(next+2, 0, s.cols, f.menu, styleMenu)
	}
	right := f.clock
	if f.status != "" {
		right = f.status + "  " + right
	}
	c.text(max(s.cols-len([]rune(right))-1, 0), 0, s.cols, right, styleMenu)

	for _, w := range f.windows {
		if visible(w) {
			drawWindow(c, s, w)
		}
	}

	dockRow := s.dockRow()
	c.fill(0, dockRow, s.cols, styleDock)
	for _, item := range f.dock {
		style := styleDock
		switch {
		case item.minimized:
			style = styleDockMinimized
		case item.open:
			style = styleDockOpen
		}
		c.text(item.start, dockRow, item.end, item.label, style)
	}
	return c
}

func drawWindow(c *canvas, s screen, w wm.Window) {
	b := s.box(w.Geometry)
	right := b.x + b.w

	title, body, address := styleTitle, styleBody, styleAddress
	if w.Active {
		title = styleTitleActive
	}
	if w.Visibility == wm.VisibilityClosing || w.Minimizing {
		title, body, address = styleFading, styleFading, styleFading
	}

	c.fill(b.x, b.y, b.w, title)
	buttons := styleButton
	if title == styleFading {
		buttons = styleFading
	}
	c.text(b.x+closeCol, b.y, right, "[x]", buttons)
	c.text(b.x+minimizeCol, b.y, right, "[-]", buttons)
	c.text(b.x+maximizeCol, b.y, right, "[+]", buttons)
	c.text(b.x+titleCol, b.y, right-1, w.Title, title)

	for row := b.y + 1; row < b.y+b.h; row++ {
		c.fill(b.x, row, b.w, body)
		c.set(b.x, row, '│', body)
		c.set(right-1, row, '│', body)
	}
	last := b.y + b.h - 1
	for col := b.x; col < right; col++ {
		c.set(col, last, '─', body)
	}
	c.set(b.x, last, '└', body)
	c.set(right-1, last, '◢', styleGrip)

	if b.h > 2 {
		c.text(b.x+2, b.y+1, right-1, w.Address, address)
	}
	if b.h > 4 && w.Image != "" {
		label := "▣ " + w.Image
		mid := b.y + 1 + (b.h-2)/2
		col := b.x + max((b.w-len([]rune(label)))/2, 2)
		c.text(col, mid, right-1, label, body)
	}
}
