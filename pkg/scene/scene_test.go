package scene

import (
	"math"
	"testing"

	"github.com/taigrr/cornell/pkg/math3d"
)

func TestCornellBoxTriangleCount(t *testing.T) {
	s := CornellBox()
	if len(s.Triangles) != 30 {
		t.Fatalf("len(Triangles) = %d, want 30", len(s.Triangles))
	}
	if s.Light != DefaultLight() {
		t.Errorf("Light = %+v, want default", s.Light)
	}
}

func TestCornellBoxFitsUnitCube(t *testing.T) {
	b := CornellBox().Bounds()
	want := NewBounds(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	for _, pair := range [][2]math3d.Vec3{{b.Min, want.Min}, {b.Max, want.Max}} {
		d := pair[0].Sub(pair[1])
		if math.Abs(d.X) > 1e-12 || math.Abs(d.Y) > 1e-12 || math.Abs(d.Z) > 1e-12 {
			t.Fatalf("Bounds = %+v, want %+v", b, want)
		}
	}
}

func TestCornellBoxNormals(t *testing.T) {
	s := CornellBox()

	tests := []struct {
		name  string
		index int
		want  math3d.Vec3
	}{
		{"floor", 0, math3d.V3(0, -1, 0)},     // floor is at y=+1, faces up (-Y)
		{"ceiling", 6, math3d.V3(0, 1, 0)},    // ceiling faces down
		{"back wall", 8, math3d.V3(0, 0, -1)}, // faces the camera
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Triangles[tt.index].Normal
			if got.Sub(tt.want).Len() > 1e-9 {
				t.Errorf("Normal = %v, want %v", got, tt.want)
			}
		})
	}

	for i, tri := range s.Triangles {
		if math.Abs(tri.Normal.Len()-1) > 1e-9 {
			t.Errorf("triangle %d normal length = %v", i, tri.Normal.Len())
		}
	}
}

func TestCornellRoomNormalsFaceInside(t *testing.T) {
	s := CornellBox()
	center := math3d.Zero3()
	for i, tri := range s.Triangles[:10] {
		if tri.Normal.Dot(center.Sub(tri.Centroid())) <= 0 {
			t.Errorf("room triangle %d faces outward: %v", i, tri.Normal)
		}
	}
}

func TestNewTriangleWinding(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), White)
	// (v2-v0) × (v1-v0) = y × x = -z
	if tri.Normal != math3d.V3(0, 0, -1) {
		t.Errorf("Normal = %v, want (0,0,-1)", tri.Normal)
	}
	if got := tri.Area(); got != 0.5 {
		t.Errorf("Area = %v, want 0.5", got)
	}

	flat := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1), math3d.V3(2, 2, 2), White)
	if !flat.Degenerate() {
		t.Error("collinear triangle should be degenerate")
	}
}

func TestOrientNormals(t *testing.T) {
	s := New()
	// Same triangle twice; both normals start as (0,0,-1).
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), White)
	s.Add(tri, tri)

	s.OrientNormals(1, math3d.V3(0, 0, 5), true)

	if s.Triangles[0].Normal != math3d.V3(0, 0, -1) {
		t.Errorf("triangle before from changed: %v", s.Triangles[0].Normal)
	}
	if s.Triangles[1].Normal != math3d.V3(0, 0, 1) {
		t.Errorf("Normal = %v, want toward +Z", s.Triangles[1].Normal)
	}

	s.OrientNormals(0, math3d.V3(0, 0, 5), false)
	for i, tri := range s.Triangles {
		if tri.Normal.Z >= 0 {
			t.Errorf("triangle %d should face away from ref: %v", i, tri.Normal)
		}
	}
}

func TestLightIrradiance(t *testing.T) {
	l := Light{Position: math3d.V3(0, -1, 0), Power: math3d.V3(4*math.Pi, 0, 0)}

	tests := []struct {
		name string
		p, n math3d.Vec3
		want float64
	}{
		{"facing", math3d.V3(0, 1, 0), math3d.V3(0, -1, 0), 0.25}, // d=2
		{"behind", math3d.V3(0, 1, 0), math3d.V3(0, 1, 0), 0},     // cos<0
		{"grazing", math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), 0},    // cos=0
		{"at light", math3d.V3(0, -1, 0), math3d.V3(0, -1, 0), 0}, // d=0
		{"tilted", math3d.V3(0, 0, 0), math3d.V3(0, -1, 0).Add(math3d.V3(1, 0, 0)).Normalize(), math.Sqrt(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Irradiance(tt.p, tt.n)
			if math.Abs(got.X-tt.want) > 1e-12 || got.Y != 0 || got.Z != 0 {
				t.Errorf("Irradiance = %v, want (%v,0,0)", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.Empty() {
		t.Fatal("EmptyBounds should be empty")
	}

	b = b.Extend(math3d.V3(1, 2, 3)).Extend(math3d.V3(-1, 0, 5))
	if b.Empty() {
		t.Fatal("bounds with points should not be empty")
	}
	if b.Center() != math3d.V3(0, 1, 4) {
		t.Errorf("Center = %v", b.Center())
	}
	if b.Size() != math3d.V3(2, 2, 2) {
		t.Errorf("Size = %v", b.Size())
	}
	if !b.ContainsPoint(math3d.V3(0, 1, 4)) || b.ContainsPoint(math3d.V3(0, 1, 6)) {
		t.Error("ContainsPoint mismatch")
	}
}

func TestSceneCentroid(t *testing.T) {
	if got := New().Centroid(); got != math3d.Zero3() {
		t.Errorf("empty Centroid = %v", got)
	}
	c := CornellBox().Centroid()
	if !CornellBox().Bounds().ContainsPoint(c) {
		t.Errorf("Centroid %v outside the box", c)
	}
}

func TestBoundsExpand(t *testing.T) {
	b := NewBounds(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1)).Expand(0.5)
	if b.Min != math3d.V3(-0.5, -0.5, -0.5) || b.Max != math3d.V3(1.5, 1.5, 1.5) {
		t.Errorf("Expand = %+v", b)
	}
}
