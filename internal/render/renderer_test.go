package render

import (
	"bytes"
	"image/color"
	"math"
	"testing"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/world"
)

func TestNewRendererRequiresAtlases(t *testing.T) {
	cfg := testConfig(32, 24)
	if _, err := NewRenderer(cfg, nil); err == nil {
		t.Error("Expected an error without a texture store")
	}
	if _, err := NewRenderer(cfg, &graphics.TextureStore{}); err == nil {
		t.Error("Expected an error without atlases")
	}
}

func TestParallelWallPassMatchesSequential(t *testing.T) {
	scene := world.Scene{
		Map:  roomGrid(t),
		Pose: world.Pose{X: 4.3, Y: 5.7, Angle: 0.4},
		Sprites: []world.Sprite{
			{Texture: 0, X: 6.5, Y: 6.5, Size: 120},
			{Texture: 1, X: 7.5, Y: 5.5, Size: 120},
		},
	}

	for _, march := range []string{config.MarchStep, config.MarchDDA} {
		t.Run(march, func(t *testing.T) {
			render := func(workers int) (*graphics.Framebuffer, []float64, FrameStats) {
				cfg := testConfig(160, 120)
				cfg.Raycast.March = march
				cfg.Raycast.Workers = workers
				r := newTestRenderer(t, cfg)
				fb := graphics.NewFramebuffer(160, 120)
				stats := r.RenderFrame(fb, scene)
				depth := make([]float64, r.Depth().Len())
				for i := range depth {
					depth[i] = r.Depth().At(i)
				}
				return fb, depth, stats
			}

			seqFB, seqDepth, seqStats := render(1)
			parFB, parDepth, parStats := render(4)

			if !bytes.Equal(seqFB.Pix(), parFB.Pix()) {
				t.Error("Parallel wall pass produced different pixels")
			}
			for i := range seqDepth {
				if seqDepth[i] != parDepth[i] {
					t.Fatalf("Column %d depth %f vs %f", i, seqDepth[i], parDepth[i])
				}
			}
			if seqStats != parStats {
				t.Errorf("Stats differ: %+v vs %+v", seqStats, parStats)
			}
			if seqStats.ColumnsHit != 160 {
				t.Errorf("Expected every column to hit inside the room, got %d", seqStats.ColumnsHit)
			}
		})
	}
}

func TestSpritesDrawInSuppliedOrder(t *testing.T) {
	m := mustGrid(t, "        ", "        ", "        ", "        ", "        ", "        ", "        ", "        ")
	pose := world.Pose{X: 1, Y: 4, Angle: 0}
	near := world.Sprite{Texture: 0, X: 3, Y: 4, Size: 48}
	far := world.Sprite{Texture: 1, X: 5, Y: 4, Size: 48}

	testCases := []struct {
		name   string
		sorted bool
		want   string
	}{
		{"unsorted keeps call order", false, "far"},
		{"distance sort paints far first", true, "near"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(64, 48)
			cfg.Graphics.Sprite.SortByDistance = tc.sorted
			r := newTestRenderer(t, cfg)

			fb := graphics.NewFramebuffer(64, 48)
			r.RenderFrame(fb, world.Scene{Map: m, Pose: pose, Sprites: []world.Sprite{near, far}})

			want := red
			if tc.want == "far" {
				want = green
			}
			if got := fb.At(32, 24); got != want {
				t.Errorf("Center pixel %v, expected the %s sprite (%v)", got, tc.want, want)
			}
		})
	}
}

func TestSpriteOrderIsStable(t *testing.T) {
	cfg := testConfig(32, 24)
	cfg.Graphics.Sprite.SortByDistance = true
	r := newTestRenderer(t, cfg)

	pose := world.Pose{}
	sprites := []world.Sprite{
		{Texture: 1, X: 2},
		{Texture: 2, X: 5},
		{Texture: 3, X: 0, Y: 2},
		{Texture: 4, X: 1},
	}
	got := r.spriteOrder(pose, sprites)

	wantTextures := []int{2, 1, 3, 4}
	for i, want := range wantTextures {
		if got[i].Texture != want {
			t.Fatalf("Position %d: texture %d, expected %d (order %+v)", i, got[i].Texture, want, got)
		}
	}
	if sprites[0].Texture != 1 {
		t.Error("Sorting must not reorder the caller's slice")
	}
}

func TestRenderFrameStats(t *testing.T) {
	cfg := testConfig(64, 48)
	r := newTestRenderer(t, cfg)

	scene := world.Scene{
		Map:  roomGrid(t),
		Pose: world.Pose{X: 2, Y: 5, Angle: 0},
		Sprites: []world.Sprite{
			{Texture: 0, X: 4, Y: 5, Size: 48},
			{Texture: 1, X: 1, Y: 5, Size: 48}, // behind
		},
	}

	fb := graphics.NewFramebuffer(64, 48)
	stats := r.RenderFrame(fb, scene)
	if stats.ColumnsHit != 64 || stats.SpritesDrawn != 1 || stats.SpritesCulled != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}

	metrics := r.Monitor().GetCurrentMetrics()
	if metrics.FrameCount != 1 {
		t.Errorf("Expected one recorded frame, got %d", metrics.FrameCount)
	}
	if metrics.ColumnsHit != 64 || metrics.SpritesDrawn != 1 || metrics.SpritesCulled != 1 {
		t.Errorf("Monitor counters do not match frame stats: %+v", metrics)
	}
}

func TestRenderFrameAdaptsToFramebufferSize(t *testing.T) {
	r := newTestRenderer(t, testConfig(64, 48))
	scene := world.Scene{Map: roomGrid(t), Pose: world.Pose{X: 5, Y: 5}}

	fb := graphics.NewFramebuffer(20, 10)
	stats := r.RenderFrame(fb, scene)
	if r.Depth().Len() != 20 {
		t.Errorf("Expected depth buffer resized to 20 columns, got %d", r.Depth().Len())
	}
	if stats.ColumnsHit != 20 {
		t.Errorf("Expected 20 columns cast, got %d", stats.ColumnsHit)
	}
}

func TestRenderFrameWithoutMap(t *testing.T) {
	r := newTestRenderer(t, testConfig(16, 12))
	fb := graphics.NewFramebuffer(16, 12)
	stats := r.RenderFrame(fb, world.Scene{Pose: world.Pose{X: 1, Y: 1}})
	if stats.ColumnsHit != 0 {
		t.Errorf("Expected no hits without a map, got %d", stats.ColumnsHit)
	}
}

func TestDepthBufferBounds(t *testing.T) {
	d := NewDepthBuffer(4)
	d.Reset(7)
	d.Set(2, 1.5)
	d.Set(-1, 9)
	d.Set(4, 9)

	if d.At(2) != 1.5 || d.At(0) != 7 {
		t.Errorf("Unexpected values %f %f", d.At(2), d.At(0))
	}
	if d.At(-1) != 0 || d.At(4) != 0 {
		t.Error("Out-of-range reads must return 0")
	}
}

func TestWeaponOverlayCoversWallsAndSkipsKey(t *testing.T) {
	key := graphics.RGB(testConfig(64, 48).Graphics.Sprite.TransparentKey)
	blue := color.RGBA{20, 20, 220, 255}

	// Texture 1 is keyed on its left half and blue on its right half
	img := stripImage(8, red, blue)
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(8+x, y, key)
		}
	}
	sprites, err := graphics.NewAtlas(img, graphics.WithColorKey(key))
	if err != nil {
		t.Fatalf("Failed to build sprite atlas: %v", err)
	}
	walls, err := graphics.NewAtlas(stripImage(8, white, white, white, white))
	if err != nil {
		t.Fatalf("Failed to build wall atlas: %v", err)
	}

	// Facing the west wall from 0.2 tiles away: walls fill every row
	scene := world.Scene{Map: roomGrid(t), Pose: world.Pose{X: 1.2, Y: 5.5, Angle: math.Pi}}
	render := func(enabled bool) *graphics.Framebuffer {
		cfg := testConfig(64, 48)
		cfg.Graphics.Weapon = config.WeaponConfig{Enabled: enabled, Texture: 1, XOffset: 0, Size: 16}
		r, err := NewRenderer(cfg, &graphics.TextureStore{Walls: walls, Sprites: sprites})
		if err != nil {
			t.Fatalf("NewRenderer failed: %v", err)
		}
		defer r.Stop()
		fb := graphics.NewFramebuffer(64, 48)
		r.RenderFrame(fb, scene)
		return fb
	}

	plain := render(false)
	armed := render(true)

	// The weapon square spans columns 32..47 and rows 32..47
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			inBox := x >= 32 && x < 48 && y >= 32
			switch {
			case inBox && x >= 40:
				if plain.At(x, y) != white {
					t.Fatalf("Pixel (%d,%d): expected wall behind the weapon, got %v", x, y, plain.At(x, y))
				}
				if armed.At(x, y) != blue {
					t.Fatalf("Pixel (%d,%d): expected weapon texel, got %v", x, y, armed.At(x, y))
				}
			default:
				if armed.At(x, y) != plain.At(x, y) {
					t.Fatalf("Pixel (%d,%d): key or outside texel changed the frame: %v vs %v", x, y, armed.At(x, y), plain.At(x, y))
				}
			}
		}
	}
}
