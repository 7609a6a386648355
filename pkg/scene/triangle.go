// Package scene holds the triangle soups, lights and scene sources shared by
// the rasterizer and the ray tracer.
package scene

import "github.com/taigrr/cornell/pkg/math3d"

// Triangle is a flat-coloured triangle with a precomputed unit normal.
type Triangle struct {
	V0, V1, V2 math3d.Vec3
	Color      math3d.Vec3 // reflectance (albedo), each component in [0,1]
	Normal     math3d.Vec3
}

// NewTriangle builds a triangle and computes its normal from the winding:
// normalize((v2-v0) × (v1-v0)).
func NewTriangle(v0, v1, v2, color math3d.Vec3) Triangle {
	t := Triangle{V0: v0, V1: v1, V2: v2, Color: color}
	t.ComputeNormal()
	return t
}

// ComputeNormal recomputes Normal from the vertex winding.
// A degenerate triangle gets a zero normal.
func (t *Triangle) ComputeNormal() {
	e1 := t.V1.Sub(t.V0)
	e2 := t.V2.Sub(t.V0)
	t.Normal = e2.Cross(e1).Normalize()
}

// Vertices returns the three corners in order.
func (t Triangle) Vertices() [3]math3d.Vec3 {
	return [3]math3d.Vec3{t.V0, t.V1, t.V2}
}

// Centroid returns the average of the three corners.
func (t Triangle) Centroid() math3d.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Scale(1.0 / 3.0)
}

// Area returns the surface area.
func (t Triangle) Area() float64 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Len() * 0.5
}

// Degenerate reports whether the triangle has no usable area or normal.
func (t Triangle) Degenerate() bool {
	return t.Normal == math3d.Zero3()
}
