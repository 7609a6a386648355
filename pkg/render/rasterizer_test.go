package render

import (
	"math"
	"testing"

	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/scene"
)

var (
	_ Renderer = (*Rasterizer)(nil)
	_ Renderer = (*Wireframe)(nil)
	_ Target   = (*Framebuffer)(nil)
)

func TestRasterizerFillsProjectedBounds(t *testing.T) {
	for _, mode := range []DepthMode{DepthSpan, DepthBarycentric} {
		t.Run(mode.String(), func(t *testing.T) {
			ctx := testContext(frontTriangle(2, red))
			fb := NewFramebuffer(testSize, testSize)
			r := NewRasterizer()
			r.Depth = mode
			r.Draw(ctx, fb)

			set := coloredPixels(fb)
			if len(set) == 0 {
				t.Fatal("no pixels drawn")
			}
			if !connected(set) {
				t.Error("drawn pixels are not connected")
			}

			minX, minY, maxX, maxY := math.MaxInt, math.MaxInt, math.MinInt, math.MinInt
			for p := range set {
				minX, maxX = min(minX, p.X), max(maxX, p.X)
				minY, maxY = min(minY, p.Y), max(maxY, p.Y)
			}
			for _, c := range []struct{ got, want int }{{minX, 25}, {maxX, 75}, {minY, 25}, {maxY, 75}} {
				if abs(c.got-c.want) > 1 {
					t.Errorf("bbox = (%d,%d)-(%d,%d), want (25,25)-(75,75) ±1", minX, minY, maxX, maxY)
					break
				}
			}

			if got := fb.GetPixel(35, 35); got != ToRGBA(red) {
				t.Errorf("interior pixel = %v, want red", got)
			}
			if got := fb.GetPixel(70, 70); !isBlack(got) {
				t.Errorf("pixel beyond hypotenuse = %v, want black", got)
			}
		})
	}
}

func TestRasterizerDepthOrder(t *testing.T) {
	near := frontTriangle(2, red)
	far := frontTriangle(4, blue)

	tests := []struct {
		name  string
		order []scene.Triangle
	}{
		{"near first", []scene.Triangle{near, far}},
		{"far first", []scene.Triangle{far, near}},
	}

	for _, mode := range []DepthMode{DepthSpan, DepthBarycentric} {
		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				ctx := testContext(tt.order...)
				fb := NewFramebuffer(testSize, testSize)
				r := NewRasterizer()
				r.Depth = mode
				r.Draw(ctx, fb)

				for _, p := range []Point{{30, 30}, {40, 50}, {50, 40}} {
					if got := fb.GetPixel(p.X, p.Y); got != ToRGBA(red) {
						t.Errorf("pixel %v = %v, want near (red)", p, got)
					}
				}
				if got := r.DepthBuffer().At(30, 30); math.Abs(got-0.5) > 1e-12 {
					t.Errorf("depth at (30,30) = %v, want 0.5", got)
				}
			})
		}
	}
}

func TestRasterizerEqualDepthKeepsFirst(t *testing.T) {
	ctx := testContext(frontTriangle(2, red), frontTriangle(2, blue))
	fb := NewFramebuffer(testSize, testSize)
	NewRasterizer().Draw(ctx, fb)

	if got := fb.GetPixel(35, 35); got != ToRGBA(red) {
		t.Errorf("pixel = %v, want first-drawn red", got)
	}
}

func TestRasterizerSkipsUnprojectable(t *testing.T) {
	tri := scene.NewTriangle(
		math3d.V3(-1, -1, 2),
		math3d.V3(1, -1, 2),
		math3d.V3(0, 1, -1), // behind the camera
		red,
	)
	ctx := testContext(tri)
	fb := NewFramebuffer(testSize, testSize)
	NewRasterizer().Draw(ctx, fb)

	if n := len(coloredPixels(fb)); n != 0 {
		t.Errorf("drew %d pixels for a triangle crossing the camera plane", n)
	}
}

func TestRasterizerOffscreenClipped(t *testing.T) {
	// Much wider than the screen; every visible pixel must still be drawn
	// without writing out of bounds.
	tri := scene.NewTriangle(
		math3d.V3(-10, -10, 2),
		math3d.V3(10, -10, 2),
		math3d.V3(0, 10, 2),
		red,
	)
	ctx := testContext(tri)
	fb := NewFramebuffer(testSize, testSize)
	NewRasterizer().Draw(ctx, fb)

	if got := fb.GetPixel(50, 50); got != ToRGBA(red) {
		t.Errorf("center = %v, want red", got)
	}
}

func TestRasterizerLitShading(t *testing.T) {
	white := math3d.V3(1, 1, 1)
	ctx := testContext(frontTriangle(2, white))
	// Light at the camera; the triangle's normal (0,0,-1) faces it.
	// Irradiance at (0,0,2) is P/(4π·4) = 0.4.
	ctx.Light = scene.Light{
		Position: math3d.Zero3(),
		Power:    math3d.V3(0.4*16*math.Pi, 0, 0),
		Indirect: math3d.V3(0, 0.2, 0),
	}

	fb := NewFramebuffer(testSize, testSize)
	r := NewRasterizer()
	r.Shading = ShadingLit
	r.Draw(ctx, fb)

	got := fb.GetPixel(50, 30)
	world := math3d.V3(0, -0.4, 2) // pixel (50,30) at depth 2
	want := ToRGBA(white.Mul(ctx.Light.Irradiance(world, math3d.V3(0, 0, -1)).Add(ctx.Light.Indirect)))
	if abs(int(got.R)-int(want.R)) > 1 || abs(int(got.G)-int(want.G)) > 1 || got.B != 0 {
		t.Errorf("lit pixel = %v, want ≈ %v", got, want)
	}
	if got.R == 0 || got.R == 255 {
		t.Errorf("lit pixel red channel = %d, want attenuated", got.R)
	}
}

func TestRasterizerLitBackFacingGetsIndirectOnly(t *testing.T) {
	tri := frontTriangle(2, math3d.V3(1, 1, 1))
	tri.Normal = tri.Normal.Negate()
	ctx := testContext(tri)
	ctx.Light = scene.Light{
		Position: math3d.Zero3(),
		Power:    math3d.V3(100, 100, 100),
		Indirect: math3d.V3(0.2, 0.2, 0.2),
	}

	fb := NewFramebuffer(testSize, testSize)
	r := NewRasterizer()
	r.Shading = ShadingLit
	r.Draw(ctx, fb)

	if got, want := fb.GetPixel(35, 35), ToRGBA(ctx.Light.Indirect); got != want {
		t.Errorf("pixel = %v, want indirect only %v", got, want)
	}
}

func TestRasterizerCornellBox(t *testing.T) {
	s := scene.CornellBox()
	cam := NewCamera(testSize)
	ctx := NewContext(s, cam)
	fb := NewFramebuffer(testSize, testSize)
	NewRasterizer().Draw(ctx, fb)

	// Every pixel sees some wall of the closed room.
	if n := len(coloredPixels(fb)); n != testSize*testSize {
		t.Errorf("colored pixels = %d, want %d", n, testSize*testSize)
	}
	// The tall blue block stands left of centre (x is flipped).
	if got := fb.GetPixel(35, 60); got != ToRGBA(scene.Blue) {
		t.Errorf("pixel (35,60) = %v, want blue block", got)
	}
}

func TestParseModes(t *testing.T) {
	for _, s := range []Shading{ShadingFlat, ShadingLit} {
		got, err := ParseShading(s.String())
		if err != nil || got != s {
			t.Errorf("ParseShading(%q) = %v, %v", s, got, err)
		}
	}
	for _, m := range []DepthMode{DepthSpan, DepthBarycentric} {
		got, err := ParseDepthMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseDepthMode(%q) = %v, %v", m, got, err)
		}
	}
	if _, err := ParseShading("phong"); err == nil {
		t.Error("ParseShading(phong) should fail")
	}
	if _, err := ParseDepthMode("exact"); err == nil {
		t.Error("ParseDepthMode(exact) should fail")
	}
}

func BenchmarkRasterizerCornellBox(b *testing.B) {
	ctx := NewContext(scene.CornellBox(), NewCamera(500))
	fb := NewFramebuffer(500, 500)
	r := NewRasterizer()

	for b.Loop() {
		r.Draw(ctx, fb)
	}
}
