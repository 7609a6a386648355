package render

import (
	"image/color"

	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/scene"
)

const (
	testSize  = 100
	testFocal = 100.0
)

var (
	red  = math3d.V3(1, 0, 0)
	blue = math3d.V3(0, 0, 1)
)

// testContext places the camera at the origin looking along +Z.
func testContext(tris ...scene.Triangle) *Context {
	s := scene.New()
	s.Add(tris...)
	cam := NewCamera(testFocal)
	cam.SetPosition(math3d.Zero3())
	return NewContext(s, cam)
}

// frontTriangle faces the camera at depth z and projects to
// (25,25), (75,25), (25,75) on a 100x100 target regardless of z.
func frontTriangle(z float64, c math3d.Vec3) scene.Triangle {
	h := z / 4
	return scene.NewTriangle(
		math3d.V3(-h, -h, z),
		math3d.V3(h, -h, z),
		math3d.V3(-h, h, z),
		c,
	)
}

func isBlack(c color.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// coloredPixels returns the set of non-black pixels.
func coloredPixels(fb *Framebuffer) map[Point]bool {
	set := make(map[Point]bool)
	for y := range fb.Height {
		for x := range fb.Width {
			if !isBlack(fb.GetPixel(x, y)) {
				set[Point{x, y}] = true
			}
		}
	}
	return set
}

// connected reports whether the set is 4-connected.
func connected(set map[Point]bool) bool {
	var start Point
	for p := range set {
		start = p
		break
	}
	seen := map[Point]bool{start: true}
	queue := []Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range []Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			q := Point{p.X + d.X, p.Y + d.Y}
			if set[q] && !seen[q] {
				seen[q] = true
				queue = append(queue, q)
			}
		}
	}
	return len(seen) == len(set)
}
