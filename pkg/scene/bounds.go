package scene

import (
	"math"

	"github.com/taigrr/cornell/pkg/math3d"
)

// Bounds is an axis-aligned bounding box.
// The zero value is not empty; use EmptyBounds to start accumulating.
type Bounds struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewBounds creates bounds from min and max points.
func NewBounds(min, max math3d.Vec3) Bounds {
	return Bounds{Min: min, Max: max}
}

// EmptyBounds returns inverted bounds that any Extend call will replace.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: math3d.V3(inf, inf, inf),
		Max: math3d.V3(-inf, -inf, -inf),
	}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the bounds to include p.
func (b Bounds) Extend(p math3d.Vec3) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Center returns the center of the box.
func (b Bounds) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box.
func (b Bounds) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Expand grows the box by margin on every side.
func (b Bounds) Expand(margin float64) Bounds {
	m := math3d.V3(margin, margin, margin)
	return Bounds{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// ContainsPoint returns true if the point is inside the box.
func (b Bounds) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
