package scene

import "github.com/taigrr/cornell/pkg/math3d"

// Scene is an unordered triangle soup lit by a single light.
type Scene struct {
	Triangles []Triangle
	Light     Light
}

// New returns an empty scene with the default light.
func New() *Scene {
	return &Scene{Light: DefaultLight()}
}

// Add appends triangles to the scene.
func (s *Scene) Add(tris ...Triangle) {
	s.Triangles = append(s.Triangles, tris...)
}

// Bounds returns the bounding box of every vertex.
func (s *Scene) Bounds() Bounds {
	b := EmptyBounds()
	for _, t := range s.Triangles {
		b = b.Extend(t.V0).Extend(t.V1).Extend(t.V2)
	}
	return b
}

// Centroid returns the area-unweighted mean of the triangle centroids.
func (s *Scene) Centroid() math3d.Vec3 {
	if len(s.Triangles) == 0 {
		return math3d.Zero3()
	}
	var sum math3d.Vec3
	for _, t := range s.Triangles {
		sum = sum.Add(t.Centroid())
	}
	return sum.Scale(1 / float64(len(s.Triangles)))
}

// OrientNormals flips normals so they face toward ref (or away from it when
// toward is false). Triangles starting at index from are affected; earlier
// ones keep the normal their winding gave them.
func (s *Scene) OrientNormals(from int, ref math3d.Vec3, toward bool) {
	for i := max(from, 0); i < len(s.Triangles); i++ {
		t := &s.Triangles[i]
		facing := t.Normal.Dot(ref.Sub(t.Centroid())) >= 0
		if facing != toward {
			t.Normal = t.Normal.Negate()
		}
	}
}
