package geom

import "math"

// BoundingBox is an axis-aligned 2D bounding box.
type BoundingBox struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// NewBoundingBox returns an empty bounding box ready for expansion:
// Min at +inf, Max at -inf, so the first Expand sets both corners.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vec2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// BoxFromCorners returns the bounding box spanning two arbitrary corners.
func BoxFromCorners(a, b Vec2) BoundingBox {
	return BoundingBox{
		Min: Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// IsEmpty reports whether the box has never been expanded.
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Expand grows the box to include the point p.
func (b BoundingBox) Expand(p Vec2) BoundingBox {
	return BoundingBox{
		Min: Vec2{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Vec2{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return b.Expand(o.Min).Expand(o.Max)
}

// Contains reports whether the point p lies inside or on the box.
func (b BoundingBox) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// ContainsBox reports whether o lies entirely inside b.
func (b BoundingBox) ContainsBox(o BoundingBox) bool {
	return b.Contains(o.Min) && b.Contains(o.Max)
}

// Intersects reports whether the two boxes overlap.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// Center returns the center point of the box.
func (b BoundingBox) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Width returns the X extent of the box.
func (b BoundingBox) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the Y extent of the box.
func (b BoundingBox) Height() float64 {
	return b.Max.Y - b.Min.Y
}
