package scene

import (
	"math"

	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/models"
)

// FromMesh converts an imported mesh into scene triangles, uniformly scaled
// and translated so it is centred in fit and touches its tightest side.
// Faces without a material use defaultColor.
//
// When the mesh carries vertex normals the winding normal is flipped to
// agree with them; otherwise the winding decides.
func FromMesh(mesh *models.Mesh, fit Bounds, defaultColor math3d.Vec3) []Triangle {
	if mesh == nil || len(mesh.Faces) == 0 {
		return nil
	}

	size := mesh.Size()
	target := fit.Size()
	scale := math.Inf(1)
	for _, axis := range [][2]float64{{size.X, target.X}, {size.Y, target.Y}, {size.Z, target.Z}} {
		if axis[0] > 0 {
			scale = math.Min(scale, axis[1]/axis[0])
		}
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}

	m := math3d.Translate(fit.Center()).
		Mul(math3d.ScaleUniform(scale)).
		Mul(math3d.Translate(mesh.Center().Negate()))
	placed := mesh.Clone()
	placed.Transform(m)

	hasNormals := placed.HasNormals()
	tris := make([]Triangle, 0, len(placed.Faces))
	for i := range placed.Faces {
		color := defaultColor
		if mat := placed.GetMaterial(placed.GetFaceMaterial(i)); mat != nil {
			color = mat.Albedo()
		}

		v0, v1, v2 := placed.FacePositions(i)
		t := NewTriangle(v0, v1, v2, color)
		if t.Degenerate() {
			continue
		}
		if hasNormals && t.Normal.Dot(placed.FaceNormal(i)) < 0 {
			t.Normal = t.Normal.Negate()
		}
		tris = append(tris, t)
	}
	return tris
}

// LoadModel loads a glTF/GLB file and fits it inside fit.
func LoadModel(path string, fit Bounds, defaultColor math3d.Vec3) ([]Triangle, error) {
	mesh, err := models.LoadGLB(path)
	if err != nil {
		return nil, err
	}
	return FromMesh(mesh, fit, defaultColor), nil
}
