package render

import "math"

// edgeCoeffs returns A, B, C for the edge function
// edge(x, y) = A*x + B*y + C of the directed edge (x0,y0)→(x1,y1).
// Its sign tells which side of the edge a point lies on.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// drawFan fills a convex polygon as a fan of triangles around its first
// vertex. It returns false when every triangle has zero area.
func (r *Rasterizer) drawFan(dst Target, poly []Pixel, shade pixelShader) bool {
	drawn := false
	for i := 1; i+1 < len(poly); i++ {
		if r.drawBarycentric(dst, [3]Pixel{poly[0], poly[i], poly[i+1]}, shade) {
			drawn = true
		}
	}
	return drawn
}

// drawBarycentric fills the triangle by testing every pixel in its clipped
// bounding box against the three edge functions and interpolating zinv and
// PosOverZ with the normalised weights. Both windings are accepted. It
// returns false, drawing nothing, for a zero-area triangle.
func (r *Rasterizer) drawBarycentric(dst Target, v [3]Pixel, shade pixelShader) bool {
	x0, y0 := float64(v[0].X), float64(v[0].Y)
	x1, y1 := float64(v[1].X), float64(v[1].Y)
	x2, y2 := float64(v[2].X), float64(v[2].Y)

	// Twice the signed area
	area2 := (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
	if area2 == 0 {
		return false
	}
	invArea := 1.0 / area2

	w, h := dst.Size()
	minX := max(0, min(v[0].X, v[1].X, v[2].X))
	maxX := min(w-1, max(v[0].X, v[1].X, v[2].X))
	minY := max(0, min(v[0].Y, v[1].Y, v[2].Y))
	maxY := min(h-1, max(v[0].Y, v[1].Y, v[2].Y))

	// Edge i is opposite vertex i, so its value weights vertex i.
	A0, B0, C0 := edgeCoeffs(x1, y1, x2, y2)
	A1, B1, C1 := edgeCoeffs(x2, y2, x0, y0)
	A2, B2, C2 := edgeCoeffs(x0, y0, x1, y1)

	for y := minY; y <= maxY; y++ {
		py := float64(y)
		for x := minX; x <= maxX; x++ {
			px := float64(x)
			b0 := edgeFunc(A0, B0, C0, px, py) * invArea
			b1 := edgeFunc(A1, B1, C1, px, py) * invArea
			b2 := edgeFunc(A2, B2, C2, px, py) * invArea
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			zinv := b0*v[0].ZInv + b1*v[1].ZInv + b2*v[2].ZInv
			if math.IsNaN(zinv) || !r.depth.TestAndSet(x, y, zinv) {
				continue
			}
			p := Pixel{
				X:    x,
				Y:    y,
				ZInv: zinv,
				PosOverZ: v[0].PosOverZ.Scale(b0).
					Add(v[1].PosOverZ.Scale(b1)).
					Add(v[2].PosOverZ.Scale(b2)),
			}
			dst.PutPixel(x, y, shade(p))
		}
	}
	return true
}
