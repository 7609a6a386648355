package trace

import (
	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/render"
)

// Tracer renders a frame by casting one primary ray per pixel through the
// context's camera.
type Tracer struct {
	// Background is written where a primary ray hits nothing.
	Background math3d.Vec3
}

// NewTracer creates a tracer with a black background.
func NewTracer() *Tracer {
	return &Tracer{}
}

// Draw implements render.Renderer. Every pixel of dst is written.
func (tr *Tracer) Draw(ctx *render.Context, dst render.Target) {
	w, h := dst.Size()
	tris := ctx.Scene.Triangles
	for y := range h {
		for x := range w {
			ray := tr.PrimaryRay(ctx.Camera, x, y, w, h)
			color := tr.Background
			if hit, ok := ClosestIntersection(ray, tris); ok {
				color = Shade(hit, tris, ctx.Light)
			}
			dst.PutPixel(x, y, color)
		}
	}
}

// PrimaryRay returns the camera ray through pixel (x, y).
func (tr *Tracer) PrimaryRay(cam *render.Camera, x, y, w, h int) Ray {
	return Ray{
		Origin: cam.Position,
		Dir:    cam.RayDirection(float64(x), float64(y), w, h),
	}
}
