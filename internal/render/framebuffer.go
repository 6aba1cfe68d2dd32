package render

import (
	"image"
	"image/color"

	"raycaster/internal/mathutil"
)

// Framebuffer is the RGBA target of the 3-D view, one pixel column per ray.
// Distinct columns never share bytes, so columns can be painted from
// different goroutines.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer allocates a framebuffer of width x height pixels.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the number of columns.
func (fb *Framebuffer) Width() int { return fb.img.Rect.Dx() }

// Height returns the number of rows.
func (fb *Framebuffer) Height() int { return fb.img.Rect.Dy() }

// Image exposes the pixel buffer for presenters.
func (fb *Framebuffer) Image() *image.RGBA { return fb.img }

// Pix returns the raw RGBA bytes, row-major with no padding.
func (fb *Framebuffer) Pix() []byte { return fb.img.Pix }

// At returns the pixel at (x, y).
func (fb *Framebuffer) At(x, y int) color.RGBA {
	return fb.img.RGBAAt(x, y)
}

// Set writes one pixel; out-of-range coordinates are ignored.
func (fb *Framebuffer) Set(x, y int, c color.RGBA) {
	fb.img.SetRGBA(x, y, c)
}

// FillColumn paints rows [y0, y1) of column x with c. The run is clamped to
// the buffer; an empty or inverted run writes nothing.
func (fb *Framebuffer) FillColumn(x, y0, y1 int, c color.RGBA) {
	if x < 0 || x >= fb.Width() {
		return
	}
	y0 = mathutil.IntClamp(y0, 0, fb.Height())
	y1 = mathutil.IntClamp(y1, 0, fb.Height())

	stride := fb.img.Stride
	i := y0*stride + x*4
	for y := y0; y < y1; y++ {
		p := fb.img.Pix[i : i+4 : i+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		i += stride
	}
}

// Clear fills the whole buffer with c.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for x := 0; x < fb.Width(); x++ {
		fb.FillColumn(x, 0, fb.Height(), c)
	}
}
