package display

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/image/draw"

	"github.com/taigrr/cornell/pkg/control"
	"github.com/taigrr/cornell/pkg/render"
)

// keyHold is how long a key counts as held after its last press event.
// Most terminals never report releases, so auto-repeat keeps keys alive.
const keyHold = 500 * time.Millisecond

// Terminal presents the buffer with half-block cells: each cell shows two
// pixels, the top one as foreground of ▀ and the bottom one as background.
// The buffer is scaled to fit the terminal, keeping its aspect ratio.
type Terminal struct {
	*render.Framebuffer

	tty *uv.Terminal
	fps int

	// mu guards the fields below and every call into tty's screen buffer.
	mu         sync.Mutex
	cols, rows int
	resized    bool
	quit       bool
	latch      *keyLatch

	scaled *image.RGBA
	done   chan struct{}
}

func openTerminal(w, h int, opts Options) (Display, error) {
	tty := uv.DefaultTerminal()

	cols, rows, err := tty.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	if err := tty.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}
	tty.EnterAltScreen()
	tty.HideCursor()
	tty.Resize(cols, rows)

	d := &Terminal{
		Framebuffer: render.NewFramebuffer(w, h),
		tty:         tty,
		fps:         opts.FPS,
		cols:        cols,
		rows:        rows,
		latch:       newKeyLatch(keyHold),
		done:        make(chan struct{}),
	}
	go d.events()
	return d, nil
}

func (d *Terminal) events() {
	for {
		select {
		case <-d.done:
			return
		case ev, ok := <-d.tty.Events():
			if !ok {
				return
			}
			d.handle(ev)
		}
	}
}

func (d *Terminal) handle(ev uv.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		d.cols, d.rows = ev.Width, ev.Height
		d.resized = true

	case uv.KeyPressEvent:
		if ev.MatchString("escape", "ctrl+c") {
			d.quit = true
			return
		}
		for _, name := range keyNames {
			if ev.MatchString(name) {
				d.latch.press(name, time.Now())
			}
		}

	case uv.KeyReleaseEvent:
		for _, name := range keyNames {
			if ev.MatchString(name) {
				d.latch.release(name)
			}
		}
	}
}

// cellScreen is the part of the terminal a frame is painted onto.
type cellScreen interface {
	SetCell(x, y int, c *uv.Cell)
}

// Present scales the buffer to the cell grid and flushes it. A pending
// resize is applied to the screen first.
func (d *Terminal) Present() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.paint(d.tty, d.resizeScreen) {
		return nil
	}
	return d.tty.Display()
}

func (d *Terminal) resizeScreen(cols, rows int) {
	d.tty.Erase()
	d.tty.Resize(cols, rows)
}

// paint draws the frame onto scr, calling resize first if the terminal
// size changed since the last frame. It reports whether anything was
// drawn. d.mu must be held.
func (d *Terminal) paint(scr cellScreen, resize func(cols, rows int)) bool {
	cols, rows := d.cols, d.rows
	if d.resized {
		resize(cols, rows)
		d.resized = false
	}
	if cols <= 0 || rows <= 0 {
		return false
	}

	bounds := image.Rect(0, 0, cols, rows*2)
	if d.scaled == nil || d.scaled.Bounds() != bounds {
		d.scaled = image.NewRGBA(bounds)
	}
	draw.Draw(d.scaled, bounds, image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)

	src := d.ToImage()
	draw.NearestNeighbor.Scale(d.scaled, fitRect(d.Width, d.Height, cols, rows*2), src, src.Bounds(), draw.Src, nil)

	drawHalfBlocks(scr, d.scaled, uv.Rect(0, 0, cols, rows))
	return true
}

// drawHalfBlocks writes img onto scr, two image rows per cell row.
func drawHalfBlocks(scr cellScreen, img *image.RGBA, area uv.Rectangle) {
	b := img.Bounds()
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < b.Max.X; col++ {
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: img.RGBAAt(col, topY),
					Bg: img.RGBAAt(col, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// fitRect returns the largest rectangle with the aspect ratio of a w×h
// image that fits centred in a dw×dh area.
func fitRect(w, h, dw, dh int) image.Rectangle {
	if w <= 0 || h <= 0 || dw <= 0 || dh <= 0 {
		return image.Rectangle{}
	}
	fw, fh := dw, dw*h/w
	if fh > dh {
		fw, fh = dh*w/h, dh
	}
	x0 := (dw - fw) / 2
	y0 := (dh - fh) / 2
	return image.Rect(x0, y0, x0+fw, y0+fh)
}

func (d *Terminal) QuitRequested() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quit
}

func (d *Terminal) Keys() control.Keys {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.latch.keys(time.Now())
}

func (d *Terminal) Run(ctx context.Context, frame func() error) error {
	return runLoop(ctx, d.fps, frame)
}

// Close restores the terminal.
func (d *Terminal) Close() error {
	close(d.done)
	d.tty.ExitAltScreen()
	d.tty.ShowCursor()
	if err := d.tty.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("shutdown terminal: %w", err)
	}
	return nil
}
