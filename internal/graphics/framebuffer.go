package graphics

import (
	"image"
	"image/color"
)

// Framebuffer is the fixed-size RGB surface the renderer draws into. It is
// backed by an *image.RGBA whose alpha is kept at 255.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer allocates a width x height surface cleared to black
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	fb.Clear(color.RGBA{A: 255})
	return fb
}

func (fb *Framebuffer) Width() int {
	return fb.img.Rect.Dx()
}

func (fb *Framebuffer) Height() int {
	return fb.img.Rect.Dy()
}

// Set writes one pixel. Writes outside the surface are dropped.
func (fb *Framebuffer) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= fb.img.Rect.Max.X || y >= fb.img.Rect.Max.Y {
		return
	}
	i := y*fb.img.Stride + x*4
	p := fb.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
}

// At reads one pixel; outside the surface it returns opaque black.
func (fb *Framebuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= fb.img.Rect.Max.X || y >= fb.img.Rect.Max.Y {
		return color.RGBA{A: 255}
	}
	i := y*fb.img.Stride + x*4
	p := fb.img.Pix[i : i+4 : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

// Clear overwrites every pixel with c
func (fb *Framebuffer) Clear(c color.RGBA) {
	pix := fb.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, 255
	// Doubling copy fills the rest from the first pixel
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// Image exposes the backing image for presenters and encoders
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// Pix returns the raw RGBA bytes, row-major with no padding
func (fb *Framebuffer) Pix() []byte {
	return fb.img.Pix
}
