// Package control turns held keys into camera and light motion. Each motion
// axis eases its velocity toward the key-driven target with a critically
// damped spring, so starts and stops are smooth at any frame rate.
package control

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/render"
	"github.com/taigrr/cornell/pkg/scene"
)

// Speeds at full key deflection.
const (
	MoveSpeed  = 1.5 // camera, units per second
	TurnSpeed  = 1.5 // camera yaw, radians per second
	LightSpeed = 1.0 // light, units per second
)

const (
	// Frequency 6 settles in about half a second, damping 1 is critically
	// damped (no overshoot).
	springFrequency = 6.0
	springDamping   = 1.0
)

// Keys is the keyboard state sampled once per frame. The arrow keys drive
// the camera, W/S/A/D/Q/E the light.
type Keys struct {
	Forward, Backward   bool // Up, Down
	TurnLeft, TurnRight bool // Left, Right

	LightForward, LightBackward bool // W, S
	LightLeft, LightRight       bool // A, D
	LightUp, LightDown          bool // Q, E

	Reset bool // R
}

// Any reports whether any motion key is held.
func (k Keys) Any() bool {
	return k.Forward || k.Backward || k.TurnLeft || k.TurnRight ||
		k.LightForward || k.LightBackward || k.LightLeft || k.LightRight ||
		k.LightUp || k.LightDown
}

func axisInput(neg, pos bool) float64 {
	v := 0.0
	if neg {
		v--
	}
	if pos {
		v++
	}
	return v
}

// Axis tracks the velocity of one motion axis.
type Axis struct {
	Velocity float64
	accel    float64 // spring's own velocity, for animating Velocity
	spring   harmonica.Spring
	step     float64 // time step the spring is tuned for
}

// NewAxis creates an axis whose spring is tuned for the given frame rate.
// Step retunes it whenever the measured frame time differs.
func NewAxis(fps int) Axis {
	var a Axis
	a.tune(harmonica.FPS(fps))
	return a
}

func (a *Axis) tune(dt float64) {
	a.spring = harmonica.NewSpring(dt, springFrequency, springDamping)
	a.step = dt
}

// Step eases the velocity toward target over dt seconds of wall time and
// returns the displacement. A non-positive dt leaves the axis unchanged.
func (a *Axis) Step(target, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if dt != a.step {
		a.tune(dt)
	}
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, target)
	return a.Velocity * dt
}

// Stop zeroes the axis immediately.
func (a *Axis) Stop() {
	a.Velocity, a.accel = 0, 0
}

// Controller moves a camera and a light from key state.
type Controller struct {
	Move, Turn             Axis
	LightX, LightY, LightZ Axis

	home       math3d.Vec3
	yaw, pitch float64
	homeLight  scene.Light
	homeSet    bool
}

// NewController creates a controller for the given frame rate.
func NewController(fps int) *Controller {
	return &Controller{
		Move:   NewAxis(fps),
		Turn:   NewAxis(fps),
		LightX: NewAxis(fps),
		LightY: NewAxis(fps),
		LightZ: NewAxis(fps),
	}
}

// Update advances one frame of dt seconds. The camera moves along its own
// forward axis and turns about world Y; the light moves along world axes
// (y points down, so "up" is -Y). Keys.Reset restores the poses seen on
// the first call.
func (c *Controller) Update(keys Keys, dt float64, cam *render.Camera, light *scene.Light) {
	if !c.homeSet {
		c.home, c.homeLight, c.homeSet = cam.Position, *light, true
		c.yaw, c.pitch = cam.Yaw, cam.Pitch
	}
	if keys.Reset {
		c.reset(cam, light)
		return
	}

	if d := c.Move.Step(MoveSpeed*axisInput(keys.Backward, keys.Forward), dt); d != 0 {
		cam.MoveForward(d)
	}
	if d := c.Turn.Step(TurnSpeed*axisInput(keys.TurnLeft, keys.TurnRight), dt); d != 0 {
		cam.Rotate(d, 0)
	}

	delta := math3d.V3(
		c.LightX.Step(LightSpeed*axisInput(keys.LightLeft, keys.LightRight), dt),
		c.LightY.Step(LightSpeed*axisInput(keys.LightUp, keys.LightDown), dt),
		c.LightZ.Step(LightSpeed*axisInput(keys.LightBackward, keys.LightForward), dt),
	)
	if delta != math3d.Zero3() {
		light.Move(delta)
	}
}

func (c *Controller) reset(cam *render.Camera, light *scene.Light) {
	for _, a := range []*Axis{&c.Move, &c.Turn, &c.LightX, &c.LightY, &c.LightZ} {
		a.Stop()
	}
	cam.SetPosition(c.home)
	cam.SetRotation(c.yaw, c.pitch)
	*light = c.homeLight
}
