package scene

import (
	"testing"

	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/models"
)

func testMesh(normal math3d.Vec3) *models.Mesh {
	m := models.NewMesh("tri")
	m.Vertices = []models.MeshVertex{
		{Position: math3d.V3(0, 0, 0), Normal: normal},
		{Position: math3d.V3(4, 0, 0), Normal: normal},
		{Position: math3d.V3(0, 4, 0), Normal: normal},
		{Position: math3d.V3(1, 1, 0), Normal: normal}, // collinear face below
	}
	m.Faces = []models.Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{0, 3, 3}, Material: -1},
	}
	m.Materials = []models.Material{{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}}}
	m.CalculateBounds()
	return m
}

func TestFromMesh(t *testing.T) {
	fit := NewBounds(math3d.V3(-1, -1, 0), math3d.V3(1, 1, 0))
	tris := FromMesh(testMesh(math3d.Zero3()), fit, White)

	if len(tris) != 1 {
		t.Fatalf("len = %d, want 1 (degenerate face dropped)", len(tris))
	}
	tri := tris[0]
	if tri.Color != math3d.V3(1, 0, 0) {
		t.Errorf("Color = %v, want material red", tri.Color)
	}
	for _, v := range tri.Vertices() {
		if !fit.Expand(1e-9).ContainsPoint(v) {
			t.Errorf("vertex %v outside %+v", v, fit)
		}
	}
	// Winding decides without vertex normals.
	if tri.Normal != math3d.V3(0, 0, -1) {
		t.Errorf("Normal = %v, want winding normal (0,0,-1)", tri.Normal)
	}
}

func TestFromMeshFollowsVertexNormals(t *testing.T) {
	fit := NewBounds(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	tris := FromMesh(testMesh(math3d.V3(0, 0, 1)), fit, White)

	if len(tris) != 1 {
		t.Fatalf("len = %d, want 1", len(tris))
	}
	if tris[0].Normal != math3d.V3(0, 0, 1) {
		t.Errorf("Normal = %v, want flipped to (0,0,1)", tris[0].Normal)
	}
}

func TestFromMeshEmpty(t *testing.T) {
	if tris := FromMesh(nil, NewBounds(math3d.Zero3(), math3d.Zero3()), White); tris != nil {
		t.Errorf("FromMesh(nil) = %v", tris)
	}
}
