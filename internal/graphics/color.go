package graphics

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB converts a config triple to an opaque color, clamping each channel.
func RGB(c [3]int) color.RGBA {
	return color.RGBA{clampChannel(c[0]), clampChannel(c[1]), clampChannel(c[2]), 255}
}

func clampChannel(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// Shade multiplies each channel by factor and keeps only the low byte of the
// product. A product above 255 wraps instead of saturating.
func Shade(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: shadeChannel(c.R, factor),
		G: shadeChannel(c.G, factor),
		B: shadeChannel(c.B, factor),
		A: 255,
	}
}

func shadeChannel(v uint8, factor float64) uint8 {
	return uint8(uint32(float64(v)*factor) & 0xFF)
}

// Gradient is a per-row color ramp interpolated over the full screen height.
type Gradient struct {
	rows []color.RGBA
}

// NewGradient precomputes one color per row, blending from top at row 0
// toward bottom by the fraction row/height.
func NewGradient(top, bottom color.RGBA, height int) Gradient {
	from := toColorful(top)
	to := toColorful(bottom)
	rows := make([]color.RGBA, height)
	for y := range rows {
		t := float64(y) / float64(height)
		r, g, b := from.BlendRgb(to, t).RGB255()
		rows[y] = color.RGBA{r, g, b, 255}
	}
	return Gradient{rows: rows}
}

// At returns the color of row y, clamped to the ramp ends
func (g Gradient) At(y int) color.RGBA {
	if len(g.rows) == 0 {
		return color.RGBA{A: 255}
	}
	if y < 0 {
		y = 0
	} else if y >= len(g.rows) {
		y = len(g.rows) - 1
	}
	return g.rows[y]
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
