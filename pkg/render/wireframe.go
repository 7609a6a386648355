package render

import (
	"github.com/taigrr/cornell/pkg/math3d"
)

// Wireframe draws triangle edges without depth testing.
type Wireframe struct {
	// Color overrides the triangles' own colours when non-nil.
	Color *math3d.Vec3
	// ShowLight marks the light position with a small cross.
	ShowLight bool

	clip Clipper
	pts  []Point
	line []Point
}

// NewWireframe creates a wireframe renderer that uses triangle colours.
func NewWireframe() *Wireframe {
	return &Wireframe{ShowLight: true}
}

// Draw implements Renderer.
func (w *Wireframe) Draw(ctx *Context, dst Target) {
	for _, tri := range ctx.Scene.Triangles {
		color := tri.Color
		if w.Color != nil {
			color = *w.Color
		}
		w.DrawTriangle(ctx.Camera, dst, tri.Vertices(), color)
	}
	if w.ShowLight {
		w.DrawPoint(ctx.Camera, dst, ctx.Light.Position, 0.1, math3d.V3(1, 1, 1))
	}
}

// DrawTriangle draws the edges of a triangle. A triangle with a vertex
// nearer than the near plane is skipped; one reaching beyond the guard band
// is clipped to it first.
func (w *Wireframe) DrawTriangle(cam *Camera, dst Target, v [3]math3d.Vec3, color math3d.Vec3) {
	width, height := dst.Size()
	for i := range v {
		if !cam.InFront(v[i]) {
			return
		}
	}

	clipped := w.clip.Polygon(cam, v[:], width, height)
	w.pts = w.pts[:0]
	for _, c := range clipped {
		p, ok := cam.Project(c, width, height)
		if !ok {
			return
		}
		w.pts = append(w.pts, p.Point())
	}
	for i, p := range w.pts {
		w.drawEdge(dst, p, w.pts[(i+1)%len(w.pts)], color)
	}
}

// DrawLine3D draws the part of a 3D line that lies inside the guard band,
// if both endpoints are in front of the near plane.
func (w *Wireframe) DrawLine3D(cam *Camera, dst Target, a, b math3d.Vec3, color math3d.Vec3) {
	width, height := dst.Size()
	if !cam.InFront(a) || !cam.InFront(b) {
		return
	}
	a, b, ok := cam.ClipSegment(a, b, width, height)
	if !ok {
		return
	}
	pa, okA := cam.Project(a, width, height)
	pb, okB := cam.Project(b, width, height)
	if !okA || !okB {
		return
	}
	w.drawEdge(dst, pa.Point(), pb.Point(), color)
}

// DrawPoint draws a point as a small cross.
func (w *Wireframe) DrawPoint(cam *Camera, dst Target, pos math3d.Vec3, size float64, color math3d.Vec3) {
	half := size / 2
	w.DrawLine3D(cam, dst, pos.Sub(math3d.V3(half, 0, 0)), pos.Add(math3d.V3(half, 0, 0)), color)
	w.DrawLine3D(cam, dst, pos.Sub(math3d.V3(0, half, 0)), pos.Add(math3d.V3(0, half, 0)), color)
	w.DrawLine3D(cam, dst, pos.Sub(math3d.V3(0, 0, half)), pos.Add(math3d.V3(0, 0, half)), color)
}

func (w *Wireframe) drawEdge(dst Target, a, b Point, color math3d.Vec3) {
	n := EdgeSamples(a.X, a.Y, b.X, b.Y)
	if cap(w.line) < n {
		w.line = make([]Point, n)
	}
	w.line = w.line[:n]
	Interpolate(a, b, w.line)
	for _, p := range w.line {
		dst.PutPixel(p.X, p.Y, color)
	}
}
