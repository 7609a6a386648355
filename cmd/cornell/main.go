// cornell - software rasterizer and ray tracer
// Renders the Cornell box (or a glTF model or Lua scene placed in it) to a
// terminal, a window or an image file.
//
// Controls:
//
//	Up/Down     - Move camera forward/backward
//	Left/Right  - Turn camera
//	W/S         - Move light forward/backward
//	A/D         - Move light left/right
//	Q/E         - Move light up/down
//	R           - Reset camera and light
//	Esc         - Quit (writes the snapshot)
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taigrr/cornell/pkg/app"
	"github.com/taigrr/cornell/pkg/config"
	"github.com/taigrr/cornell/pkg/display"
)

const controls = `Controls:
  Up/Down     Move camera forward/backward
  Left/Right  Turn camera
  W/S/A/D     Move light forward/backward/left/right
  Q/E         Move light up/down
  R           Reset camera and light
  Esc         Quit and write the snapshot`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		flags      config.Flags
	)

	cmd := &cobra.Command{
		Use:   "cornell [scene.glb|scene.lua]",
		Short: "Software rasterizer and ray tracer for the Cornell box",
		Long: "Render the Cornell box with a scanline rasterizer, a wireframe renderer\n" +
			"or a ray tracer with shadows.\n\n" + controls,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.Scene = args[0]
			}
			return run(cmd.Context(), configPath, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "JSON config file")
	f.StringVarP(&flags.Mode, "mode", "m", "", "render mode: raster, wireframe or trace")
	f.StringVarP(&flags.Display, "display", "d", "", "display: auto, terminal, window or headless")
	f.IntVar(&flags.Width, "width", 0, "image width in pixels (raster 500, trace 100)")
	f.IntVar(&flags.Height, "height", 0, "image height in pixels (raster 500, trace 100)")
	f.Float64Var(&flags.Focal, "focal", 0, "focal length in pixels (default: height)")
	f.IntVarP(&flags.Frames, "frames", "n", 0, "frames to render on the headless display")
	f.IntVar(&flags.FPS, "fps", 0, "target frame rate")
	f.StringVarP(&flags.Output, "output", "o", "", `snapshot written on exit: .bmp, .png, .webp or .tga ("-" for none)`)
	f.StringVar(&flags.Shading, "shading", "", "rasterizer shading: flat or lit")
	f.StringVar(&flags.Depth, "depth", "", "rasterizer depth interpolation: span or barycentric")
	f.StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	return cmd
}

func run(ctx context.Context, configPath string, flags config.Flags) (err error) {
	var cfg config.Config
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal display owns the screen; hold log lines until it is
	// closed.
	var held bytes.Buffer
	var out io.Writer = os.Stderr
	if kind, _ := display.ParseKind(cfg.Display); display.Resolve(kind) == display.KindTerminal &&
		term.IsTerminal(int(os.Stderr.Fd())) {
		out = &held
	}
	logger := log.NewWithOptions(out, log.Options{
		Level:           cfg.Level(),
		Prefix:          "cornell",
		ReportTimestamp: true,
	})

	disp, err := app.OpenDisplay(cfg)
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}
	defer func() {
		if cerr := disp.Close(); err == nil && cerr != nil {
			err = cerr
		}
		_, _ = held.WriteTo(os.Stderr)
	}()

	_, err = app.Run(ctx, cfg, disp, logger)
	return err
}
