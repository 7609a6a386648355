// Package display is the platform shim the frame loop draws through: it
// owns the pixel buffer, presents it, reports input and quit requests, and
// writes the exit snapshot.
package display

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/taigrr/cornell/pkg/control"
	"github.com/taigrr/cornell/pkg/render"
)

var (
	// ErrNoWindow is returned by Open when the window backend was left out
	// of the build (headless tag).
	ErrNoWindow = errors.New("display: window backend not available in this build")

	// ErrQuit, returned from a frame function, ends Run without error.
	ErrQuit = errors.New("display: quit")
)

// Kind names a backend.
type Kind string

const (
	KindAuto     Kind = "auto"
	KindTerminal Kind = "terminal"
	KindWindow   Kind = "window"
	KindHeadless Kind = "headless"
)

// Kinds lists the accepted backend names.
var Kinds = []Kind{KindAuto, KindTerminal, KindWindow, KindHeadless}

// ParseKind parses a backend name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown display %q", s)
}

// Options tunes a backend.
type Options struct {
	Title string
	// FPS caps the frame rate of interactive backends; 0 means uncapped.
	FPS int
	// Frames is the number of frames a headless display presents before it
	// requests quit; 0 means never.
	Frames int
}

// Display is a pixel target plus the presentation, input and lifecycle
// calls of the frame loop.
type Display interface {
	render.Target

	// Clear resets the buffer to black.
	Clear()
	// Present shows the buffer.
	Present() error
	// QuitRequested drains pending events and reports whether the user
	// asked to stop.
	QuitRequested() bool
	// Keys returns the keys currently held.
	Keys() control.Keys
	// Save writes the buffer to an image file.
	Save(path string) error
	// Run calls frame until it returns an error, the context ends or the
	// backend shuts down. ErrQuit is not reported.
	Run(ctx context.Context, frame func() error) error
	Close() error
}

// Open creates a backend of the given kind with a w×h pixel buffer.
func Open(kind Kind, w, h int, opts Options) (Display, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("display: invalid size %dx%d", w, h)
	}
	switch Resolve(kind) {
	case KindTerminal:
		return openTerminal(w, h, opts)
	case KindWindow:
		return openWindow(w, h, opts)
	case KindHeadless:
		return NewHeadless(w, h, opts), nil
	}
	return nil, fmt.Errorf("unknown display %q", kind)
}

// Resolve maps KindAuto to the terminal backend when stdout is a terminal
// and to the headless backend otherwise. Other kinds are returned as is.
func Resolve(kind Kind) Kind {
	if kind != KindAuto {
		return kind
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return KindTerminal
	}
	return KindHeadless
}

// runLoop drives frame until it fails or ctx ends, sleeping between frames
// to hold fps when fps > 0.
func runLoop(ctx context.Context, fps int, frame func() error) error {
	var tick <-chan time.Time
	if fps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := frame(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		}
	}
}
