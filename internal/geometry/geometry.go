package geometry

import "fmt"

// Point is a pointer position in layout units.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Sub returns the delta p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width/height pair in layout units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect represents a window position and size
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// MoveTo returns r with its top-left corner at p.
func (r Rect) MoveTo(p Point) Rect {
	r.X = p.X
	r.Y = p.Y
	return r
}

// Resize returns r with the given size; the origin is unchanged.
func (r Rect) Resize(s Size) Rect {
	r.Width = s.Width
	r.Height = s.Height
	return r
}

// Contains reports whether p lies inside r (right and bottom edges exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// AtLeast returns v, or floor when v is smaller.
func AtLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
