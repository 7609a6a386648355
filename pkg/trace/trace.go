// Package trace is a brute-force ray tracer over a triangle soup: every ray
// is tested against every triangle, with a point light, hard shadows and a
// constant indirect term.
package trace

import (
	"math"

	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/scene"
)

// ShadowEpsilon offsets shadow-ray origins along the surface normal so a
// surface does not shadow itself.
const ShadowEpsilon = 1e-4

// parallelEpsilon is the largest |cos| between the ray and the triangle
// plane's normal that still counts as parallel.
const parallelEpsilon = 1e-9

// Ray is a half-line Origin + t·Dir, t ≥ 0.
type Ray struct {
	Origin math3d.Vec3
	Dir    math3d.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Intersection is the closest hit found along a ray.
type Intersection struct {
	Position math3d.Vec3
	// Distance is the ray parameter t; it is a Euclidean distance when the
	// ray direction has unit length.
	Distance      float64
	TriangleIndex int
}

// Intersect solves Origin + t·Dir = V0 + u·e1 + v·e2 as the 3×3 system
// [-Dir e1 e2]·(t,u,v) = Origin - V0. It reports a hit when u, v ≥ 0,
// u+v ≤ 1 and t ≥ 0. Rays (nearly) parallel to the triangle's plane and
// degenerate triangles never hit.
func Intersect(ray Ray, tri *scene.Triangle) (t, u, v float64, ok bool) {
	e1 := tri.V1.Sub(tri.V0)
	e2 := tri.V2.Sub(tri.V0)

	a := math3d.Mat3FromCols(ray.Dir.Negate(), e1, e2)

	// det = -Dir·(e1×e2); compare it with the product of the lengths so
	// the test does not depend on the triangle's size.
	scale := e1.Cross(e2).Len() * ray.Dir.Len()
	if !(math.Abs(a.Determinant()) > parallelEpsilon*scale) {
		return 0, 0, 0, false
	}

	inv, ok := a.Inverse()
	if !ok {
		return 0, 0, 0, false
	}
	x := inv.MulVec3(ray.Origin.Sub(tri.V0))
	t, u, v = x.X, x.Y, x.Z

	if t < 0 || u < 0 || v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// ClosestIntersection returns the hit with the smallest t over all
// triangles. On equal t the lower index wins.
func ClosestIntersection(ray Ray, tris []scene.Triangle) (Intersection, bool) {
	best := Intersection{Distance: math.Inf(1), TriangleIndex: -1}
	for i := range tris {
		t, _, _, ok := Intersect(ray, &tris[i])
		if ok && t < best.Distance {
			best.Distance = t
			best.TriangleIndex = i
		}
	}
	if best.TriangleIndex < 0 {
		return Intersection{}, false
	}
	best.Position = ray.At(best.Distance)
	return best, true
}

// Occluded reports whether any triangle is hit at a t below maxDist.
func Occluded(ray Ray, tris []scene.Triangle, maxDist float64) bool {
	for i := range tris {
		if t, _, _, ok := Intersect(ray, &tris[i]); ok && t < maxDist {
			return true
		}
	}
	return false
}

// DirectLight returns the irradiance the point light delivers to a hit:
//
//	Power · max(0, n·r̂) / (4π d²)
//
// or zero when a shadow ray from the hit (offset by ShadowEpsilon along the
// normal) meets any triangle closer than the light.
func DirectLight(hit Intersection, tris []scene.Triangle, light scene.Light) math3d.Vec3 {
	n := tris[hit.TriangleIndex].Normal

	r := light.Position.Sub(hit.Position)
	d := r.Len()
	if d == 0 {
		return math3d.Zero3()
	}
	dir := r.Scale(1 / d)

	cos := n.Dot(dir)
	if cos <= 0 {
		return math3d.Zero3()
	}

	shadow := Ray{Origin: hit.Position.Add(n.Scale(ShadowEpsilon)), Dir: dir}
	if Occluded(shadow, tris, d) {
		return math3d.Zero3()
	}

	return light.Power.Scale(cos / (4 * math.Pi * d * d))
}

// Shade returns the reflected colour at a hit: albedo ⊙ (direct + indirect).
func Shade(hit Intersection, tris []scene.Triangle, light scene.Light) math3d.Vec3 {
	direct := DirectLight(hit, tris, light)
	return tris[hit.TriangleIndex].Color.Mul(direct.Add(light.Indirect))
}
