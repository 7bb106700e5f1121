// Package geom provides 2D geometry primitives for normalized image space.
// Coordinates are unit-normalized: (0,0) is the top-left of the frame and
// (1,1) the bottom-right, regardless of source resolution.
package geom

import "math"

// Point represents a 2D point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Clamp01 restricts both coordinates to [0, 1].
func (p Point) Clamp01() Point {
	return Point{X: clamp(p.X, 0, 1), Y: clamp(p.Y, 0, 1)}
}

// Rect represents an axis-aligned rectangle.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// RectFromCenter builds a rectangle from its center point and dimensions.
func RectFromCenter(c Point, width, height float64) Rect {
	return Rect{
		Left:   c.X - width/2,
		Top:    c.Y - height/2,
		Right:  c.X + width/2,
		Bottom: c.Y + height/2,
	}
}

// BoundingRect returns the smallest axis-aligned rectangle containing all
// the given points. Returns the zero Rect when called with no points.
func BoundingRect(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Left: pts[0].X, Top: pts[0].Y, Right: pts[0].X, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		r.Left = math.Min(r.Left, p.X)
		r.Top = math.Min(r.Top, p.Y)
		r.Right = math.Max(r.Right, p.X)
		r.Bottom = math.Max(r.Bottom, p.Y)
	}
	return r
}

// Width returns the rectangle width.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the rectangle height.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Center returns the rectangle center point.
func (r Rect) Center() Point {
	return Point{
		X: (r.Left + r.Right) / 2,
		Y: (r.Top + r.Bottom) / 2,
	}
}

// Area returns the rectangle area.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Clamp01 restricts all edges to [0, 1].
func (r Rect) Clamp01() Rect {
	return Rect{
		Left:   clamp(r.Left, 0, 1),
		Top:    clamp(r.Top, 0, 1),
		Right:  clamp(r.Right, 0, 1),
		Bottom: clamp(r.Bottom, 0, 1),
	}
}

// Corners returns the four corner points in clockwise order from top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Left, Y: r.Top},
		{X: r.Right, Y: r.Top},
		{X: r.Right, Y: r.Bottom},
		{X: r.Left, Y: r.Bottom},
	}
}

// clamp restricts a value to a range.
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
