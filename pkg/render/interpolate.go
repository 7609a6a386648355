package render

import (
	"math"

	"github.com/taigrr/cornell/pkg/math3d"
)

// Lerper is a value that can be linearly interpolated toward another of
// the same type.
type Lerper[T any] interface {
	Lerp(to T, t float64) T
}

// Interpolate fills out with len(out) evenly spaced samples from a to b,
// both ends included. Each sample is computed from a directly, so error
// does not accumulate along long edges.
func Interpolate[T Lerper[T]](a, b T, out []T) {
	n := len(out)
	switch n {
	case 0:
		return
	case 1:
		out[0] = a
		return
	}
	for i := range n - 1 {
		out[i] = lerpAt(a, b, i, n)
	}
	out[n-1] = b
}

// lerpAt returns sample i of n between a and b.
func lerpAt[T Lerper[T]](a, b T, i, n int) T {
	if n <= 1 {
		return a
	}
	return a.Lerp(b, float64(i)/float64(n-1))
}

// EdgeSamples is the number of samples needed to draw a line between two
// screen points without gaps: max(|dx|, |dy|) + 1.
func EdgeSamples(x0, y0, x1, y1 int) int {
	return max(abs(x1-x0), abs(y1-y0)) + 1
}

// Point is a bare screen position.
type Point struct {
	X, Y int
}

// Lerp implements Lerper, rounding to the nearest pixel.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{lerpInt(p.X, q.X, t), lerpInt(p.Y, q.Y, t)}
}

// Pixel is a projected vertex: a screen position plus the attributes that
// vary linearly in screen space, zinv = 1/z and the world position over z.
type Pixel struct {
	X, Y     int
	ZInv     float64
	PosOverZ math3d.Vec3
}

// Lerp implements Lerper, rounding the position to the nearest pixel.
func (p Pixel) Lerp(q Pixel, t float64) Pixel {
	return Pixel{
		X:        lerpInt(p.X, q.X, t),
		Y:        lerpInt(p.Y, q.Y, t),
		ZInv:     p.ZInv + (q.ZInv-p.ZInv)*t,
		PosOverZ: p.PosOverZ.Lerp(q.PosOverZ, t),
	}
}

// Point drops the interpolated attributes.
func (p Pixel) Point() Point {
	return Point{p.X, p.Y}
}

// WorldPos recovers the perspective-correct world position.
func (p Pixel) WorldPos() math3d.Vec3 {
	if p.ZInv == 0 {
		return math3d.Zero3()
	}
	return p.PosOverZ.Scale(1 / p.ZInv)
}

func lerpInt(a, b int, t float64) int {
	return a + int(math.Round(float64(b-a)*t))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
