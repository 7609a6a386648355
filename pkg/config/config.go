// Package config holds the viewer settings: a JSON file, overridden by CLI
// flags, with defaults filled in last.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/taigrr/cornell/pkg/display"
	"github.com/taigrr/cornell/pkg/render"
)

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("config: invalid")

// Render modes.
const (
	ModeRaster    = "raster"
	ModeWireframe = "wireframe"
	ModeTrace     = "trace"
)

// Modes lists the accepted render modes.
var Modes = []string{ModeRaster, ModeWireframe, ModeTrace}

// Defaults.
const (
	DefaultRasterSize = 500
	DefaultTraceSize  = 100
	DefaultOutput     = "screenshot.bmp"
	DefaultFPS        = 30
	DefaultFrames     = 1
)

// Config holds all viewer settings.
type Config struct {
	Mode    string `json:"mode"`
	Display string `json:"display"`

	Width  int `json:"width"`
	Height int `json:"height"`
	// Focal length in pixels; 0 uses the height.
	Focal float64 `json:"focal"`

	// Frames is the headless frame budget.
	Frames int `json:"frames"`
	FPS    int `json:"fps"`

	// Output is the snapshot written on exit; "-" disables it.
	Output string `json:"output"`
	// Scene is empty for the Cornell box, or a .glb/.gltf model placed in
	// the box, or a .lua scene script.
	Scene string `json:"scene"`

	Shading  string `json:"shading"`
	Depth    string `json:"depth"`
	LogLevel string `json:"log_level"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Mode, Display  string
	Width, Height  int
	Focal          float64
	Frames, FPS    int
	Output, Scene  string
	Shading, Depth string
	LogLevel       string
}

// Load reads a JSON config file. Fields not set in the file keep their
// zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies CLI flags over the file values, then fills any empty
// fields with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	setString(&c.Mode, flags.Mode)
	setString(&c.Display, flags.Display)
	setString(&c.Output, flags.Output)
	setString(&c.Scene, flags.Scene)
	setString(&c.Shading, flags.Shading)
	setString(&c.Depth, flags.Depth)
	setString(&c.LogLevel, flags.LogLevel)
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Focal > 0 {
		c.Focal = flags.Focal
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}

	// Defaults
	setDefault(&c.Mode, ModeRaster)
	setDefault(&c.Display, string(display.KindAuto))
	setDefault(&c.Output, DefaultOutput)
	setDefault(&c.Shading, render.ShadingFlat.String())
	setDefault(&c.Depth, render.DepthSpan.String())
	setDefault(&c.LogLevel, log.InfoLevel.String())

	size := DefaultRasterSize
	if c.Mode == ModeTrace {
		size = DefaultTraceSize
	}
	if c.Width <= 0 {
		c.Width = size
	}
	if c.Height <= 0 {
		c.Height = size
	}
	if c.Focal <= 0 {
		c.Focal = float64(c.Height)
	}
	if c.Frames <= 0 {
		c.Frames = DefaultFrames
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDefault(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// Validate checks every enumerated field and the sizes.
func (c *Config) Validate() error {
	if !slices.Contains(Modes, c.Mode) {
		return fmt.Errorf("%w: mode %q (want one of %v)", ErrInvalid, c.Mode, Modes)
	}
	if _, err := display.ParseKind(c.Display); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := render.ParseShading(c.Shading); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := render.ParseDepthMode(c.Depth); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Width <= 0 || c.Height <= 0 || c.Width > render.MaxScreenCoord || c.Height > render.MaxScreenCoord {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if !(c.Focal > 0) {
		return fmt.Errorf("%w: focal length %v", ErrInvalid, c.Focal)
	}
	if c.Output != "-" && !slices.Contains(render.Formats, render.FormatFromPath(c.Output)) {
		return fmt.Errorf("%w: output %q (formats %v)", ErrInvalid, c.Output, render.Formats)
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
