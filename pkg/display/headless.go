package display

import (
	"context"

	"github.com/taigrr/cornell/pkg/control"
	"github.com/taigrr/cornell/pkg/render"
)

// Headless renders offscreen. It requests quit after Frames presents and
// replays Script as keyboard input, one entry per frame.
type Headless struct {
	*render.Framebuffer

	Frames int
	Script []control.Keys

	presented int
	closed    bool
}

// NewHeadless creates an offscreen display.
func NewHeadless(w, h int, opts Options) *Headless {
	return &Headless{
		Framebuffer: render.NewFramebuffer(w, h),
		Frames:      opts.Frames,
	}
}

// Present counts the frame.
func (d *Headless) Present() error {
	d.presented++
	return nil
}

// Presented returns the number of frames presented so far.
func (d *Headless) Presented() int { return d.presented }

// QuitRequested reports whether the frame budget is spent or the display
// was closed.
func (d *Headless) QuitRequested() bool {
	return d.closed || (d.Frames > 0 && d.presented >= d.Frames)
}

// Keys returns the scripted keys for the current frame.
func (d *Headless) Keys() control.Keys {
	if d.presented < len(d.Script) {
		return d.Script[d.presented]
	}
	return control.Keys{}
}

// Run loops without frame pacing; the frame budget or ctx ends it.
func (d *Headless) Run(ctx context.Context, frame func() error) error {
	return runLoop(ctx, 0, frame)
}

func (d *Headless) Close() error {
	d.closed = true
	return nil
}
