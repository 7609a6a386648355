package control

import (
	"math"
	"slices"
	"testing"

	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/render"
	"github.com/taigrr/cornell/pkg/scene"
)

const fps = 60

// hold runs n frames with the given keys.
func hold(c *Controller, keys Keys, n int, cam *render.Camera, light *scene.Light) {
	for range n {
		c.Update(keys, 1.0/fps, cam, light)
	}
}

func TestAxisEasesToTarget(t *testing.T) {
	a := NewAxis(fps)
	first := a.Step(1, 1.0/fps)
	if first <= 0 || a.Velocity >= 1 {
		t.Errorf("first step velocity = %v, want in (0, 1)", a.Velocity)
	}
	for range 2 * fps {
		a.Step(1, 1.0/fps)
	}
	if math.Abs(a.Velocity-1) > 1e-3 {
		t.Errorf("velocity after 2s = %v, want 1", a.Velocity)
	}
	for range 2 * fps {
		a.Step(0, 1.0/fps)
	}
	if math.Abs(a.Velocity) > 1e-3 {
		t.Errorf("velocity after release = %v, want 0", a.Velocity)
	}
	// Critically damped: never overshoots below zero on release.
	if a.Velocity < -1e-9 {
		t.Errorf("velocity overshot to %v", a.Velocity)
	}
}

func TestAxisEasingFollowsWallTime(t *testing.T) {
	tests := []struct {
		name string
		dts  []float64
	}{
		{"configured rate", slices.Repeat([]float64{1.0 / fps}, 30)},
		{"slow frames", slices.Repeat([]float64{0.1}, 5)},
		{"uneven frames", []float64{0.1, 0.15, 0.25}},
	}

	// Critically damped from rest: v(t) = 1 - (1 + ωt)e^(-ωt)
	const elapsed = 0.5
	wt := springFrequency * elapsed
	want := 1 - (1+wt)*math.Exp(-wt)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAxis(fps)
			for _, dt := range tt.dts {
				a.Step(1, dt)
			}
			if math.Abs(a.Velocity-want) > 1e-6 {
				t.Errorf("velocity after %vs = %v, want %v", elapsed, a.Velocity, want)
			}
		})
	}
}

func TestAxisIgnoresEmptyStep(t *testing.T) {
	a := NewAxis(fps)
	a.Step(1, 1.0/fps)
	v := a.Velocity
	if d := a.Step(1, 0); d != 0 || a.Velocity != v {
		t.Errorf("Step(1, 0) = %v with velocity %v, want 0 with %v", d, a.Velocity, v)
	}
}

func TestControllerMovesCamera(t *testing.T) {
	cam := render.NewCamera(100)
	light := scene.DefaultLight()
	c := NewController(fps)

	start := cam.Position
	hold(c, Keys{Forward: true}, 2*fps, cam, &light)

	// Two seconds at 1.5 u/s, less the spring's ramp-up.
	moved := cam.Position.Sub(start)
	if moved.Z < 2 || moved.Z > 3 {
		t.Errorf("moved %v along z, want between 2 and 3", moved.Z)
	}
	if math.Abs(moved.X) > 1e-9 || math.Abs(moved.Y) > 1e-9 {
		t.Errorf("camera drifted off axis: %v", moved)
	}
	if light != scene.DefaultLight() {
		t.Errorf("light moved to %v", light.Position)
	}
}

func TestControllerTurns(t *testing.T) {
	tests := []struct {
		name string
		keys Keys
		sign float64
	}{
		{"left", Keys{TurnLeft: true}, -1},
		{"right", Keys{TurnRight: true}, 1},
		{"both", Keys{TurnLeft: true, TurnRight: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := render.NewCamera(100)
			light := scene.DefaultLight()
			c := NewController(fps)
			hold(c, tt.keys, fps, cam, &light)

			switch {
			case tt.sign == 0 && cam.Yaw != 0:
				t.Errorf("yaw = %v, want 0", cam.Yaw)
			case tt.sign*cam.Yaw < 0 || (tt.sign != 0 && cam.Yaw == 0):
				t.Errorf("yaw = %v, want sign %v", cam.Yaw, tt.sign)
			}
		})
	}
}

func TestControllerMovesLight(t *testing.T) {
	tests := []struct {
		name string
		keys Keys
		dir  math3d.Vec3
	}{
		{"forward", Keys{LightForward: true}, math3d.V3(0, 0, 1)},
		{"backward", Keys{LightBackward: true}, math3d.V3(0, 0, -1)},
		{"left", Keys{LightLeft: true}, math3d.V3(-1, 0, 0)},
		{"right", Keys{LightRight: true}, math3d.V3(1, 0, 0)},
		{"up", Keys{LightUp: true}, math3d.V3(0, -1, 0)},
		{"down", Keys{LightDown: true}, math3d.V3(0, 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := render.NewCamera(100)
			light := scene.DefaultLight()
			start := light.Position
			c := NewController(fps)
			hold(c, tt.keys, fps, cam, &light)

			moved := light.Position.Sub(start)
			if moved.Normalize().Sub(tt.dir).Len() > 1e-9 {
				t.Errorf("light moved %v, want along %v", moved, tt.dir)
			}
			if cam.Position != render.DefaultCameraPosition {
				t.Errorf("camera moved to %v", cam.Position)
			}
		})
	}
}

func TestControllerReset(t *testing.T) {
	cam := render.NewCamera(100)
	cam.SetRotation(0.2, 0)
	light := scene.DefaultLight()
	c := NewController(fps)

	hold(c, Keys{Forward: true, TurnLeft: true, LightUp: true}, fps, cam, &light)
	c.Update(Keys{Reset: true}, 1.0/fps, cam, &light)

	if cam.Position != render.DefaultCameraPosition || cam.Yaw != 0.2 {
		t.Errorf("camera = %v yaw %v, want home pose", cam.Position, cam.Yaw)
	}
	if light != scene.DefaultLight() {
		t.Errorf("light = %v, want default", light.Position)
	}
	if c.Move.Velocity != 0 || c.Turn.Velocity != 0 || c.LightY.Velocity != 0 {
		t.Error("velocities not cleared")
	}

	// No keys after reset: nothing moves.
	hold(c, Keys{}, 10, cam, &light)
	if cam.Position != render.DefaultCameraPosition {
		t.Errorf("camera drifted to %v", cam.Position)
	}
}

func TestKeysAny(t *testing.T) {
	if (Keys{}).Any() {
		t.Error("zero Keys reports motion")
	}
	if (Keys{Reset: true}).Any() {
		t.Error("Reset is not a motion key")
	}
	if !(Keys{LightDown: true}).Any() {
		t.Error("LightDown not reported")
	}
}
