package render

import (
	"fmt"
	"math"

	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/scene"
)

// Shading selects how the rasterizer colours covered pixels.
type Shading int

const (
	// ShadingFlat writes the triangle's reflectance unchanged.
	ShadingFlat Shading = iota
	// ShadingLit evaluates the point light per pixel (no shadows) plus
	// the indirect term, using the perspective-correct world position.
	ShadingLit
)

func (s Shading) String() string {
	switch s {
	case ShadingFlat:
		return "flat"
	case ShadingLit:
		return "lit"
	}
	return fmt.Sprintf("Shading(%d)", int(s))
}

// ParseShading parses "flat" or "lit".
func ParseShading(s string) (Shading, error) {
	switch s {
	case "flat":
		return ShadingFlat, nil
	case "lit":
		return ShadingLit, nil
	}
	return 0, fmt.Errorf("unknown shading %q", s)
}

// DepthMode selects how zinv is obtained inside a triangle.
type DepthMode int

const (
	// DepthSpan fills scanline spans between per-row edge extremes. Each
	// extreme keeps the zinv of the edge sample that produced it, which
	// approximates true barycentric depth along the row ends.
	DepthSpan DepthMode = iota
	// DepthBarycentric evaluates edge functions per pixel and interpolates
	// zinv exactly. Zero-area triangles fall back to DepthSpan.
	DepthBarycentric
)

func (m DepthMode) String() string {
	switch m {
	case DepthSpan:
		return "span"
	case DepthBarycentric:
		return "barycentric"
	}
	return fmt.Sprintf("DepthMode(%d)", int(m))
}

// ParseDepthMode parses "span" or "barycentric".
func ParseDepthMode(s string) (DepthMode, error) {
	switch s {
	case "span":
		return DepthSpan, nil
	case "barycentric":
		return DepthBarycentric, nil
	}
	return 0, fmt.Errorf("unknown depth mode %q", s)
}

// pixelShader returns the colour of one covered pixel.
type pixelShader func(p Pixel) math3d.Vec3

// Rasterizer fills triangles with a scanline algorithm and a zinv depth
// buffer. It is not safe for concurrent use.
type Rasterizer struct {
	Shading Shading
	Depth   DepthMode

	depth *DepthBuffer

	// scratch reused across triangles
	clip        Clipper
	poly        []Pixel
	edge        []Pixel
	left, right []Pixel
}

// NewRasterizer creates a flat-shaded span rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{depth: NewDepthBuffer(0, 0)}
}

// DepthBuffer exposes the buffer filled by the last frame.
func (r *Rasterizer) DepthBuffer() *DepthBuffer {
	return r.depth
}

// Begin sizes and clears the depth buffer for a new frame on dst.
func (r *Rasterizer) Begin(dst Target) {
	r.depth.Resize(dst.Size())
	r.depth.Clear()
}

// Draw implements Renderer: it clears the depth buffer and draws every
// triangle of the scene.
func (r *Rasterizer) Draw(ctx *Context, dst Target) {
	r.Begin(dst)
	for i := range ctx.Scene.Triangles {
		r.DrawTriangle(ctx, dst, &ctx.Scene.Triangles[i])
	}
}

// DrawTriangle projects and fills one triangle against the current depth
// buffer. Triangles with a vertex nearer than the near plane are skipped;
// parts projecting beyond the guard band are clipped away.
func (r *Rasterizer) DrawTriangle(ctx *Context, dst Target, tri *scene.Triangle) {
	w, h := dst.Size()

	verts := tri.Vertices()
	for _, v := range verts {
		if !ctx.Camera.InFront(v) {
			return
		}
	}
	clipped := r.clip.Polygon(ctx.Camera, verts[:], w, h)
	if len(clipped) < 3 {
		return
	}

	r.poly = r.poly[:0]
	for _, v := range clipped {
		p, ok := ctx.Camera.Project(v, w, h)
		if !ok {
			return
		}
		r.poly = append(r.poly, p)
	}

	shade := r.shader(ctx, tri)
	if r.Depth == DepthBarycentric && r.drawFan(dst, r.poly, shade) {
		return
	}

	r.computeRows(r.poly, h)
	r.drawRows(dst, shade)
}

func (r *Rasterizer) shader(ctx *Context, tri *scene.Triangle) pixelShader {
	albedo := tri.Color
	if r.Shading != ShadingLit {
		return func(Pixel) math3d.Vec3 { return albedo }
	}
	light, normal := ctx.Light, tri.Normal
	return func(p Pixel) math3d.Vec3 {
		d := light.Irradiance(p.WorldPos(), normal)
		return albedo.Mul(d.Add(light.Indirect))
	}
}

// ComputePolygonRows returns, for every screen row the polygon covers, the
// leftmost and rightmost edge samples. Rows are limited to [0, height) when
// height > 0. Each row's Y is set even if no edge sample reached it, in
// which case left.X > right.X.
func ComputePolygonRows(vertices []Pixel, height int) (left, right []Pixel) {
	var r Rasterizer
	r.computeRows(vertices, height)
	return r.left, r.right
}

func (r *Rasterizer) computeRows(vertices []Pixel, height int) {
	r.left, r.right = r.left[:0], r.right[:0]
	if len(vertices) == 0 {
		return
	}

	minY, maxY := vertices[0].Y, vertices[0].Y
	for _, v := range vertices[1:] {
		minY = min(minY, v.Y)
		maxY = max(maxY, v.Y)
	}
	if height > 0 {
		minY = max(minY, 0)
		maxY = min(maxY, height-1)
	}
	if maxY < minY {
		return
	}

	rows := maxY - minY + 1
	for i := range rows {
		y := minY + i
		r.left = append(r.left, Pixel{X: math.MaxInt, Y: y})
		r.right = append(r.right, Pixel{X: math.MinInt, Y: y})
	}

	for i, a := range vertices {
		b := vertices[(i+1)%len(vertices)]
		n := EdgeSamples(a.X, a.Y, b.X, b.Y)
		if cap(r.edge) < n {
			r.edge = make([]Pixel, n)
		}
		r.edge = r.edge[:n]
		Interpolate(a, b, r.edge)

		for _, p := range r.edge {
			row := p.Y - minY
			if row < 0 || row >= rows {
				continue
			}
			if p.X < r.left[row].X {
				r.left[row] = p
			}
			if p.X > r.right[row].X {
				r.right[row] = p
			}
		}
	}
}

// drawRows fills each row's span, clipped to the target, interpolating
// between the row's left and right samples.
func (r *Rasterizer) drawRows(dst Target, shade pixelShader) {
	w, _ := dst.Size()
	for i := range r.left {
		l, rt := r.left[i], r.right[i]
		if l.X > rt.X {
			continue
		}

		n := rt.X - l.X + 1
		from := max(l.X, 0)
		to := min(rt.X, w-1)
		for x := from; x <= to; x++ {
			p := lerpAt(l, rt, x-l.X, n)
			p.X, p.Y = x, l.Y
			if r.depth.TestAndSet(x, p.Y, p.ZInv) {
				dst.PutPixel(x, p.Y, shade(p))
			}
		}
	}
}
