// Package render draws scenes into pixel targets: a scanline rasterizer with
// a zinv depth buffer, a wireframe renderer, and the pinhole camera they
// share with the ray tracer.
package render

import (
	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/scene"
)

// Target is anything pixels can be written into.
// PutPixel takes a linear colour with components nominally in [0,1] and
// must ignore out-of-bounds coordinates.
type Target interface {
	Size() (width, height int)
	PutPixel(x, y int, c math3d.Vec3)
}

// Context is the per-frame render state owned by the main loop.
// The scene's triangles are read-only; Camera and Light change between
// frames.
type Context struct {
	Scene  *scene.Scene
	Camera *Camera
	Light  scene.Light
}

// NewContext builds a context starting from the scene's own light.
func NewContext(s *scene.Scene, cam *Camera) *Context {
	return &Context{Scene: s, Camera: cam, Light: s.Light}
}

// Renderer draws a whole frame. Draw does not clear dst.
type Renderer interface {
	Draw(ctx *Context, dst Target)
}
