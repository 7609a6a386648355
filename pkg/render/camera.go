package render

import (
	"math"

	"github.com/taigrr/cornell/pkg/math3d"
)

const (
	// DefaultNear is the closest camera-space depth that still projects.
	DefaultNear = 1e-3

	// MaxScreenCoord bounds projected coordinates. Project rejects points
	// further out; the renderers clip triangles to this band first.
	MaxScreenCoord = 1 << 15

	maxPitch = math.Pi/2 - 0.01
)

// DefaultCameraPosition looks at the Cornell box through its open side.
var DefaultCameraPosition = math3d.V3(0, 0, -3.001)

// Camera is a pinhole camera. Its rotation R maps camera space to world
// space: the columns of R are the camera's right, down and forward axes.
// World points reach camera space as Rᵀ(v - Position).
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (radians). Yaw turns about the world Y axis, pitch tilts
	// about the camera's right axis; R = RotateY3(Yaw) * RotateX3(Pitch).
	Yaw   float64
	Pitch float64

	// FocalLength is in pixels; with FocalLength == height the vertical
	// field of view is about 53 degrees.
	FocalLength float64
	Near        float64

	rotation math3d.Mat3
	dirty    bool
}

// NewCamera creates a camera at DefaultCameraPosition looking along +Z.
func NewCamera(focalLength float64) *Camera {
	return &Camera{
		Position:    DefaultCameraPosition,
		FocalLength: focalLength,
		Near:        DefaultNear,
		dirty:       true,
	}
}

// Rotation returns the cached camera-to-world rotation.
func (c *Camera) Rotation() math3d.Mat3 {
	if c.dirty {
		c.rotation = math3d.RotateY3(c.Yaw).Mul(math3d.RotateX3(c.Pitch))
		c.dirty = false
	}
	return c.rotation
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetRotation sets yaw and pitch (radians). Pitch is clamped short of
// straight up or down.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = clampPitch(pitch)
	c.dirty = true
}

// Rotate adds to yaw and pitch.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.SetRotation(c.Yaw+deltaYaw, c.Pitch+deltaPitch)
}

func clampPitch(p float64) float64 {
	return math.Max(-maxPitch, math.Min(maxPitch, p))
}

// Forward returns the viewing direction in world space.
func (c *Camera) Forward() math3d.Vec3 { return c.Rotation().Col(2) }

// Right returns the camera's right axis in world space.
func (c *Camera) Right() math3d.Vec3 { return c.Rotation().Col(0) }

// Down returns the camera's down axis in world space.
func (c *Camera) Down() math3d.Vec3 { return c.Rotation().Col(1) }

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.Forward().Scale(distance))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.Right().Scale(distance))
}

// ToCamera transforms a world point into camera space.
func (c *Camera) ToCamera(v math3d.Vec3) math3d.Vec3 {
	return c.Rotation().Transpose().MulVec3(v.Sub(c.Position))
}

// ToWorld transforms a camera-space point back into world space.
func (c *Camera) ToWorld(p math3d.Vec3) math3d.Vec3 {
	return c.Rotation().MulVec3(p).Add(c.Position)
}

// Project maps a world point to the screen with the pinhole model:
//
//	x = f·p.x/p.z + w/2,  y = f·p.y/p.z + h/2,  zinv = 1/p.z
//
// ok is false when the point is nearer than Near (including behind the
// camera) or projects beyond MaxScreenCoord.
func (c *Camera) Project(v math3d.Vec3, width, height int) (p Pixel, ok bool) {
	cam := c.ToCamera(v)
	if !(cam.Z >= c.Near) {
		return Pixel{}, false
	}

	zinv := 1 / cam.Z
	x := c.FocalLength*cam.X*zinv + float64(width)/2
	y := c.FocalLength*cam.Y*zinv + float64(height)/2
	if !(math.Abs(x) <= MaxScreenCoord && math.Abs(y) <= MaxScreenCoord) {
		return Pixel{}, false
	}

	return Pixel{
		X:        int(math.Round(x)),
		Y:        int(math.Round(y)),
		ZInv:     zinv,
		PosOverZ: v.Scale(zinv),
	}, true
}

// RayDirection returns the unit world-space direction through screen
// position (x, y).
func (c *Camera) RayDirection(x, y float64, width, height int) math3d.Vec3 {
	d := math3d.V3(x-float64(width)/2, y-float64(height)/2, c.FocalLength)
	return c.Rotation().MulVec3(d).Normalize()
}
