package render

import (
	"image"
	"image/color"
	"testing"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/world"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{200, 20, 20, 255}
	green = color.RGBA{20, 200, 20, 255}
	black = color.RGBA{A: 255}
)

// testConfig returns defaults sized for a small framebuffer
func testConfig(width, height int) *config.Config {
	cfg := config.Default()
	cfg.Display.ScreenWidth = width
	cfg.Display.ScreenHeight = height
	return cfg
}

// stripImage builds an atlas image of count square tiles, tile i filled with
// fills[i]
func stripImage(size int, fills ...color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size*len(fills), size))
	for i, c := range fills {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				img.SetRGBA(i*size+x, y, c)
			}
		}
	}
	return img
}

// testTextures has white walls and two opaque sprites (red, green)
func testTextures(t *testing.T, key color.RGBA) *graphics.TextureStore {
	t.Helper()
	walls, err := graphics.NewAtlas(stripImage(8, white, white, white, white))
	if err != nil {
		t.Fatalf("Failed to build wall atlas: %v", err)
	}
	sprites, err := graphics.NewAtlas(stripImage(4, red, green), graphics.WithColorKey(key))
	if err != nil {
		t.Fatalf("Failed to build sprite atlas: %v", err)
	}
	return &graphics.TextureStore{Walls: walls, Sprites: sprites}
}

func newTestRenderer(t *testing.T, cfg *config.Config) *Renderer {
	t.Helper()
	r, err := NewRenderer(cfg, testTextures(t, graphics.RGB(cfg.Graphics.Sprite.TransparentKey)))
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	t.Cleanup(r.Stop)
	return r
}

func mustGrid(t *testing.T, rows ...string) *world.Grid {
	t.Helper()
	g, err := world.NewGrid(rows)
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	return g
}

// roomGrid is a closed 10x10 room with two pillars
func roomGrid(t *testing.T) *world.Grid {
	return mustGrid(t,
		"0000000000",
		"0        0",
		"0  1     0",
		"0        0",
		"0     2  0",
		"0        0",
		"0   3    0",
		"0        0",
		"0        0",
		"0000000000",
	)
}
