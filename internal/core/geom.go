// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// run simulation pure and testable.
package core

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in world units.
// World space has its origin at the bottom-left and y grows upwards.
type Box struct {
	X, Y float64 // Bottom-left corner
	W, H float64
}

// NewBox creates a new box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Top returns the y-coordinate of the top edge.
func (b Box) Top() float64 {
	return b.Y + b.H
}

// Overlaps reports whether two boxes share interior area.
// Touching edges do not count as an overlap.
func (b Box) Overlaps(other Box) bool {
	return b.X < other.Right() && b.Right() > other.X &&
		b.Y < other.Top() && b.Top() > other.Y
}

// Contains reports whether the point lies inside the box, edges included.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x <= b.Right() && y >= b.Y && y <= b.Top()
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
