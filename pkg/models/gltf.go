package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/cornell/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// SkipMaterials leaves every face at material -1.
	SkipMaterials bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{}
}

// LoadGLB loads a binary or JSON glTF file with the default loader.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh in scene coordinates.
//
// glTF is +Y up with the model facing +Z; the scene is +Y down looking
// along +Z. Positions and normals are rotated half a turn about X, which
// keeps handedness, and faces are rewound so the scene's normal
// convention ((v2-v0)×(v1-v0)) points out of the model.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	if !l.SkipMaterials {
		for i, m := range doc.Materials {
			mesh.Materials = append(mesh.Materials, readMaterial(i, m))
		}
	}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()

	return mesh, nil
}

// readMaterial extracts the base colour, defaulting to opaque white.
func readMaterial(i int, m *gltf.Material) Material {
	mat := Material{
		Name:      m.Name,
		BaseColor: [4]float64{1, 1, 1, 1},
	}
	if mat.Name == "" {
		mat.Name = fmt.Sprintf("material%d", i)
	}
	if pbr := m.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		mat.BaseColor = *pbr.BaseColorFactor
	}
	return mat
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		material := -1
		if prim.Material != nil && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: toScene(p)}
			if i < len(normals) {
				v.Normal = toScene(normals[i]).Normalize()
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := Face{
				V: [3]int{
					baseVertex + int(indices[i]),
					baseVertex + int(indices[i+2]), // swapped
					baseVertex + int(indices[i+1]), // swapped
				},
				Material: material,
			}
			if !validFace(f, len(mesh.Vertices)) {
				return fmt.Errorf("index out of range in face %d", i/3)
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}

	return nil
}

func validFace(f Face, n int) bool {
	for _, idx := range f.V {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

// toScene converts a glTF vector to scene axes.
func toScene(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), -float64(v[1]), -float64(v[2]))
}
