package render

import (
	"github.com/taigrr/cornell/pkg/math3d"
)

// guardBand is the half-width of the screen region clipped geometry is
// kept inside. It sits one pixel within MaxScreenCoord so clipped vertices
// still project.
const guardBand = MaxScreenCoord - 1

// guardPlane is the camera-space half-space a·X + b·Y + c·Z >= 0.
type guardPlane struct{ a, b, c float64 }

func (p guardPlane) eval(v math3d.Vec3) float64 {
	return p.a*v.X + p.b*v.Y + p.c*v.Z
}

// guardPlanes returns the four planes through the camera centre whose
// intersection projects to |x|, |y| <= guardBand for z > 0.
func (c *Camera) guardPlanes(width, height int) [4]guardPlane {
	f := c.FocalLength
	cx, cy := float64(width)/2, float64(height)/2
	return [4]guardPlane{
		{-f, 0, guardBand - cx}, // x <= guardBand
		{f, 0, guardBand + cx},  // x >= -guardBand
		{0, -f, guardBand - cy}, // y <= guardBand
		{0, f, guardBand + cy},  // y >= -guardBand
	}
}

// InFront reports whether v lies at or beyond the near plane.
func (c *Camera) InFront(v math3d.Vec3) bool {
	return c.ToCamera(v).Z >= c.Near
}

// ClipSegment clips the world-space segment ab to the guard band. Both
// endpoints must be in front of the near plane. ok is false when nothing
// of the segment remains.
func (c *Camera) ClipSegment(a, b math3d.Vec3, width, height int) (math3d.Vec3, math3d.Vec3, bool) {
	for _, pl := range c.guardPlanes(width, height) {
		da, db := pl.eval(c.ToCamera(a)), pl.eval(c.ToCamera(b))
		switch {
		case da < 0 && db < 0:
			return a, b, false
		case da < 0:
			a = a.Add(b.Sub(a).Scale(da / (da - db)))
		case db < 0:
			b = b.Add(a.Sub(b).Scale(db / (db - da)))
		}
	}
	return a, b, true
}

// Clipper clips convex world-space polygons to the guard band so that a
// vertex projecting far off screen trims its polygon instead of dropping
// it. The zero value is ready to use; it is not safe for concurrent use.
type Clipper struct {
	cur, next []math3d.Vec3
}

// Polygon clips poly, whose vertices must all be in front of the near
// plane, and returns the remaining polygon. The result is reused by the
// next call. Fewer than three vertices means nothing is left.
func (k *Clipper) Polygon(cam *Camera, poly []math3d.Vec3, width, height int) []math3d.Vec3 {
	k.cur = append(k.cur[:0], poly...)
	for _, pl := range cam.guardPlanes(width, height) {
		if len(k.cur) == 0 {
			break
		}
		k.next = k.next[:0]
		for i, p := range k.cur {
			q := k.cur[(i+1)%len(k.cur)]
			dp, dq := pl.eval(cam.ToCamera(p)), pl.eval(cam.ToCamera(q))
			if dp >= 0 {
				k.next = append(k.next, p)
			}
			if (dp >= 0) != (dq >= 0) {
				k.next = append(k.next, p.Add(q.Sub(p).Scale(dp/(dp-dq))))
			}
		}
		k.cur, k.next = k.next, k.cur
	}
	return k.cur
}
