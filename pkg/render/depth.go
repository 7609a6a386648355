package render

// DepthBuffer stores the largest zinv (1/depth) drawn at each pixel.
// Zero means nothing has been drawn, i.e. infinitely far.
type DepthBuffer struct {
	Width  int
	Height int
	ZInv   []float64
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{
		Width:  width,
		Height: height,
		ZInv:   make([]float64, width*height),
	}
}

// Resize reallocates the buffer when the dimensions change.
func (d *DepthBuffer) Resize(width, height int) {
	if d.Width == width && d.Height == height {
		return
	}
	d.Width, d.Height = width, height
	d.ZInv = make([]float64, width*height)
}

// Clear resets every entry to 0.
func (d *DepthBuffer) Clear() {
	clear(d.ZInv)
}

// At returns the stored zinv, or 0 outside the buffer.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return 0
	}
	return d.ZInv[y*d.Width+x]
}

// TestAndSet records zinv at (x, y) if it is strictly greater than the
// stored value and reports whether it was. Equal depth never wins, and
// out-of-bounds pixels always fail.
func (d *DepthBuffer) TestAndSet(x, y int, zinv float64) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	i := y*d.Width + x
	if !(zinv > d.ZInv[i]) {
		return false
	}
	d.ZInv[i] = zinv
	return true
}
