package scene

import (
	"math"

	"github.com/taigrr/cornell/pkg/math3d"
)

// Light is an omnidirectional point light plus a constant ambient term.
type Light struct {
	Position math3d.Vec3
	Power    math3d.Vec3 // radiant power per channel
	Indirect math3d.Vec3 // ambient irradiance added everywhere
}

// DefaultLight returns the light used by the Cornell box scenes.
func DefaultLight() Light {
	return Light{
		Position: math3d.V3(0, -0.5, -0.7),
		Power:    math3d.V3(14, 14, 14),
		Indirect: math3d.V3(0.5, 0.5, 0.5),
	}
}

// Irradiance returns the direct irradiance from the light at point p on a
// surface with unit normal n, ignoring occlusion:
//
//	Power · max(0, n·r̂) / (4π d²)
//
// A point at the light position receives nothing.
func (l Light) Irradiance(p, n math3d.Vec3) math3d.Vec3 {
	r := l.Position.Sub(p)
	d2 := r.LenSq()
	if d2 == 0 {
		return math3d.Zero3()
	}
	cos := n.Dot(r.Scale(1 / math.Sqrt(d2)))
	if cos <= 0 {
		return math3d.Zero3()
	}
	return l.Power.Scale(cos / (4 * math.Pi * d2))
}

// Move translates the light.
func (l *Light) Move(delta math3d.Vec3) {
	l.Position = l.Position.Add(delta)
}
