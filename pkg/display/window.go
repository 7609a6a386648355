//go:build !headless

package display

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/cornell/pkg/control"
	"github.com/taigrr/cornell/pkg/render"
)

// windowScale is the initial window size in buffer pixels.
const windowScale = 2

// Window presents the buffer in a desktop window. Ebiten drives the loop
// from Run: every tick polls the keyboard and calls the frame function,
// and Draw shows the most recently presented buffer.
type Window struct {
	*render.Framebuffer

	title string
	fps   int

	ctx   context.Context
	frame func() error
	quit  bool
	keys  control.Keys

	pix []byte // last presented frame, RGBA
	img *ebiten.Image
	hud string
}

func openWindow(w, h int, opts Options) (Display, error) {
	return &Window{
		Framebuffer: render.NewFramebuffer(w, h),
		title:       opts.Title,
		fps:         opts.FPS,
		pix:         make([]byte, 4*w*h),
	}, nil
}

func (d *Window) Run(ctx context.Context, frame func() error) error {
	d.ctx, d.frame = ctx, frame

	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowSize(d.Width*windowScale, d.Height*windowScale)
	ebiten.SetWindowResizable(true)
	if d.fps > 0 {
		ebiten.SetTPS(d.fps)
	}
	if err := ebiten.RunGame(d); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (d *Window) Update() error {
	if d.ctx.Err() != nil {
		return ebiten.Termination
	}
	d.poll()

	err := d.frame()
	if errors.Is(err, ErrQuit) {
		return ebiten.Termination
	}
	return err
}

func (d *Window) poll() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.quit = true
	}
	d.keys = control.Keys{
		Forward:       ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Backward:      ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		TurnLeft:      ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		TurnRight:     ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		LightForward:  ebiten.IsKeyPressed(ebiten.KeyW),
		LightBackward: ebiten.IsKeyPressed(ebiten.KeyS),
		LightLeft:     ebiten.IsKeyPressed(ebiten.KeyA),
		LightRight:    ebiten.IsKeyPressed(ebiten.KeyD),
		LightUp:       ebiten.IsKeyPressed(ebiten.KeyQ),
		LightDown:     ebiten.IsKeyPressed(ebiten.KeyE),
		Reset:         inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// Draw implements ebiten.Game.
func (d *Window) Draw(screen *ebiten.Image) {
	if d.img == nil {
		d.img = ebiten.NewImage(d.Width, d.Height)
	}
	d.img.WritePixels(d.pix)
	screen.DrawImage(d.img, nil)
	ebitenutil.DebugPrint(screen, d.hud)
}

// Layout implements ebiten.Game.
func (d *Window) Layout(_, _ int) (int, int) {
	return d.Width, d.Height
}

// Present copies the buffer for the next Draw.
func (d *Window) Present() error {
	for i, c := range d.Pixels {
		j := i * 4
		d.pix[j+0] = c.R
		d.pix[j+1] = c.G
		d.pix[j+2] = c.B
		d.pix[j+3] = c.A
	}
	d.hud = fmt.Sprintf("%.0f FPS", ebiten.ActualFPS())
	return nil
}

func (d *Window) QuitRequested() bool { return d.quit }

func (d *Window) Keys() control.Keys { return d.keys }

func (d *Window) Close() error { return nil }
