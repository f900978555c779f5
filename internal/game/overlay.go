package game

import (
	"fmt"
	"image"
	"image/color"

	"raycaster/internal/graphics"
	"raycaster/internal/render"
	"raycaster/internal/threading/monitoring"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var overlayText = image.NewUniform(color.RGBA{255, 255, 160, 255})

// statsLine formats the overlay text for one frame
func statsLine(stats render.FrameStats, metrics monitoring.FrameMetrics) string {
	return fmt.Sprintf("%.0f fps  walls %.1fms  sprites %d/%d",
		metrics.FramesPerSecond,
		float64(metrics.WallPassTime.Microseconds())/1000,
		stats.SpritesDrawn,
		stats.SpritesDrawn+stats.SpritesCulled,
	)
}

// drawOverlay writes text in the top-left corner of the framebuffer
func drawOverlay(fb *graphics.Framebuffer, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  fb.Image(),
		Src:  overlayText,
		Face: face,
		Dot:  fixed.P(4, face.Ascent+2),
	}
	d.DrawString(text)
}
