package render

import (
	"image"
	"image/color"

	"github.com/taigrr/cornell/pkg/math3d"
)

// Framebuffer is a row-major RGBA pixel grid.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
	fb.Clear()
	return fb
}

// Size implements Target.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Clear resets every pixel to opaque black.
func (fb *Framebuffer) Clear() {
	fb.Fill(color.RGBA{A: 255})
}

// Fill sets every pixel to c.
func (fb *Framebuffer) Fill(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// PutPixel implements Target: components are clamped to [0,1] and scaled
// to 8 bits. Out-of-bounds writes are ignored.
func (fb *Framebuffer) PutPixel(x, y int, c math3d.Vec3) {
	fb.SetPixel(x, y, ToRGBA(c))
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// Save writes the framebuffer to path, choosing the encoder from the
// file extension.
func (fb *Framebuffer) Save(path string) error {
	return SaveImage(path, fb.ToImage())
}

// ToRGBA converts a linear [0,1] colour to opaque 8-bit RGBA.
func ToRGBA(c math3d.Vec3) color.RGBA {
	return color.RGBA{channel(c.X), channel(c.Y), channel(c.Z), 255}
}

func channel(v float64) uint8 {
	v *= 255
	switch {
	case !(v > 0): // also catches NaN
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
