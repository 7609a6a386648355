// Package app is the frame loop: it loads a scene, picks a renderer and
// drives a display until the user quits, then writes a snapshot.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taigrr/cornell/pkg/config"
	"github.com/taigrr/cornell/pkg/control"
	"github.com/taigrr/cornell/pkg/display"
	"github.com/taigrr/cornell/pkg/math3d"
	"github.com/taigrr/cornell/pkg/render"
	"github.com/taigrr/cornell/pkg/scene"
	"github.com/taigrr/cornell/pkg/trace"
)

// maxFrameStep caps the input time step after a stall.
const maxFrameStep = 0.1

// ModelBounds is where an imported model is placed inside the Cornell box:
// standing on the floor between the two blocks.
var ModelBounds = scene.NewBounds(math3d.V3(-0.45, 0.1, -0.6), math3d.V3(0.45, 1, 0.3))

// LoadScene returns the Cornell box for an empty path, the box with a model
// for .glb/.gltf files, or the result of a .lua scene script.
func LoadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.CornellBox(), nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		tris, err := scene.LoadModel(path, ModelBounds, scene.White)
		if err != nil {
			return nil, err
		}
		s := scene.CornellBox()
		s.Add(tris...)
		return s, nil
	case ".lua":
		return scene.LoadLua(path)
	default:
		return nil, fmt.Errorf("unsupported scene format %q (use .glb, .gltf or .lua)", ext)
	}
}

// NewRenderer builds the renderer named by cfg.Mode.
func NewRenderer(cfg config.Config) (render.Renderer, error) {
	switch cfg.Mode {
	case config.ModeRaster:
		shading, err := render.ParseShading(cfg.Shading)
		if err != nil {
			return nil, err
		}
		depth, err := render.ParseDepthMode(cfg.Depth)
		if err != nil {
			return nil, err
		}
		r := render.NewRasterizer()
		r.Shading, r.Depth = shading, depth
		return r, nil
	case config.ModeWireframe:
		return render.NewWireframe(), nil
	case config.ModeTrace:
		return trace.NewTracer(), nil
	}
	return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
}

// OpenDisplay opens the backend named by cfg.Display.
func OpenDisplay(cfg config.Config) (display.Display, error) {
	kind, err := display.ParseKind(cfg.Display)
	if err != nil {
		return nil, err
	}
	return display.Open(kind, cfg.Width, cfg.Height, display.Options{
		Title:  "cornell - " + cfg.Mode,
		FPS:    cfg.FPS,
		Frames: cfg.Frames,
	})
}

// Stats summarises a run.
type Stats struct {
	Frames int
	// Render is the total time spent clearing, drawing and presenting.
	Render time.Duration
}

// Mean returns the mean frame time.
func (s Stats) Mean() time.Duration {
	if s.Frames == 0 {
		return 0
	}
	return s.Render / time.Duration(s.Frames)
}

// Run loads the configured scene and renders frames into disp until it
// requests quit or ctx ends. Each frame checks for quit, applies input,
// clears, draws and presents. The snapshot is written on the way out unless
// cfg.Output is "-".
func Run(ctx context.Context, cfg config.Config, disp display.Display, logger *log.Logger) (Stats, error) {
	var stats Stats

	s, err := LoadScene(cfg.Scene)
	if err != nil {
		return stats, fmt.Errorf("load scene: %w", err)
	}
	r, err := NewRenderer(cfg)
	if err != nil {
		return stats, err
	}

	cam := render.NewCamera(cfg.Focal)
	rc := render.NewContext(s, cam)
	ctl := control.NewController(cfg.FPS)

	w, h := disp.Size()
	logger.Info("rendering", "mode", cfg.Mode, "size", fmt.Sprintf("%dx%d", w, h), "triangles", len(s.Triangles))

	last := time.Now()
	err = disp.Run(ctx, func() error {
		if disp.QuitRequested() {
			return display.ErrQuit
		}

		now := time.Now()
		dt := min(now.Sub(last).Seconds(), maxFrameStep)
		last = now
		ctl.Update(disp.Keys(), dt, cam, &rc.Light)

		start := time.Now()
		disp.Clear()
		r.Draw(rc, disp)
		if err := disp.Present(); err != nil {
			return fmt.Errorf("present: %w", err)
		}
		elapsed := time.Since(start)

		stats.Frames++
		stats.Render += elapsed
		logger.Debug("frame", "n", stats.Frames, "elapsed", elapsed)
		return nil
	})
	if err != nil {
		return stats, err
	}

	logger.Info("done", "frames", stats.Frames, "mean", stats.Mean())

	if cfg.Output == "-" {
		return stats, nil
	}
	if err := disp.Save(cfg.Output); err != nil {
		return stats, err
	}
	logger.Info("snapshot saved", "path", cfg.Output)
	return stats, nil
}
