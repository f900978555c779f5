package render

import (
	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
)

// fillColumn paints the sky above wallTop and the ground from the bottom of
// the wall slice down. A slice of height 0 at the horizon covers the whole
// column.
func (r *Renderer) fillColumn(fb *graphics.Framebuffer, column, wallTop, wallHeight int) {
	height := fb.Height()

	skyEnd := mathutil.IntMin(wallTop, height)
	for row := 0; row < skyEnd; row++ {
		fb.Set(column, row, r.sky.At(row))
	}

	groundStart := mathutil.IntMax(wallTop+wallHeight, 0)
	for row := groundStart; row < height; row++ {
		fb.Set(column, row, r.ground.At(row))
	}
}
