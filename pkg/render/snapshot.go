package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for snapshot paths with an unknown
// extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Formats lists the snapshot formats Encode understands.
var Formats = []string{"bmp", "png", "webp", "tga"}

// FormatFromPath returns the lower-case extension of path without the dot.
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "bmp":
		return bmp.Encode(w, img)
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "tga":
		return tga.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// SaveImage encodes img into a new file at path. The format is checked
// before the file is created.
func SaveImage(path string, img image.Image) (err error) {
	format := FormatFromPath(path)
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("save %s: %w: %q", path, ErrUnsupportedFormat, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("save %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, img, format); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
