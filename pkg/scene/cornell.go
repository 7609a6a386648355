package scene

import "github.com/taigrr/cornell/pkg/math3d"

// Reflectances used by the Cornell box.
var (
	Red    = math3d.V3(0.75, 0.15, 0.15)
	Yellow = math3d.V3(0.75, 0.75, 0.15)
	Green  = math3d.V3(0.15, 0.75, 0.15)
	Cyan   = math3d.V3(0.15, 0.75, 0.75)
	Blue   = math3d.V3(0.15, 0.15, 0.75)
	Purple = math3d.V3(0.75, 0.15, 0.75)
	White  = math3d.V3(0.75, 0.75, 0.75)
)

// cornellSide is the room's edge length in model units.
const cornellSide = 555.0

// CornellBox returns the classic room with a short and a tall block: 30
// triangles rescaled so the room spans [-1,1] on every axis, with x and y
// flipped so +Y points down the screen.
func CornellBox() *Scene {
	s := New()
	s.Triangles = CornellTriangles()
	return s
}

// CornellTriangles returns the Cornell box geometry on its own.
func CornellTriangles() []Triangle {
	const l = cornellSide
	tris := make([]Triangle, 0, 30)
	add := func(a, b, c [3]float64, color math3d.Vec3) {
		tris = append(tris, NewTriangle(cornellVertex(a), cornellVertex(b), cornellVertex(c), color))
	}

	// Room
	a := [3]float64{l, 0, 0}
	b := [3]float64{0, 0, 0}
	c := [3]float64{l, 0, l}
	d := [3]float64{0, 0, l}
	e := [3]float64{l, l, 0}
	f := [3]float64{0, l, 0}
	g := [3]float64{l, l, l}
	h := [3]float64{0, l, l}

	add(c, b, a, Green) // floor
	add(c, d, b, Green)
	add(a, e, c, Purple) // left wall
	add(c, e, g, Purple)
	add(f, b, d, Yellow) // right wall
	add(h, f, d, Yellow)
	add(e, f, g, Cyan) // ceiling
	add(f, h, g, Cyan)
	add(g, d, c, White) // back wall
	add(g, h, d, White)

	tris = append(tris, cornellBlock(
		[4][2]float64{{290, 114}, {130, 65}, {240, 272}, {82, 225}}, 165, Red)...)
	tris = append(tris, cornellBlock(
		[4][2]float64{{423, 247}, {265, 296}, {472, 406}, {314, 456}}, 330, Blue)...)
	return tris
}

// cornellBlock builds the five visible faces of a block from its footprint
// corners (x, z) and height.
func cornellBlock(base [4][2]float64, height float64, color math3d.Vec3) []Triangle {
	corner := func(i int, y float64) math3d.Vec3 {
		return cornellVertex([3]float64{base[i][0], y, base[i][1]})
	}
	a, b, c, d := corner(0, 0), corner(1, 0), corner(2, 0), corner(3, 0)
	e, f, g, h := corner(0, height), corner(1, height), corner(2, height), corner(3, height)

	return []Triangle{
		NewTriangle(e, b, a, color), // front
		NewTriangle(e, f, b, color),
		NewTriangle(f, d, b, color), // right
		NewTriangle(f, h, d, color),
		NewTriangle(h, c, d, color), // back
		NewTriangle(h, g, c, color),
		NewTriangle(g, e, c, color), // left
		NewTriangle(e, a, c, color),
		NewTriangle(g, f, e, color), // top
		NewTriangle(g, h, f, color),
	}
}

// cornellVertex maps model units to the [-1,1] cube with x and y flipped.
func cornellVertex(p [3]float64) math3d.Vec3 {
	v := math3d.V3(p[0], p[1], p[2]).Scale(2 / cornellSide).Sub(math3d.V3(1, 1, 1))
	return math3d.V3(-v.X, -v.Y, v.Z)
}
