package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"raycaster/internal/config"
	"raycaster/internal/game"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/render"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300

	// Rays drawn in the overhead fan, spread across the field of view
	fanRays = 48
)

// viewer is an overhead view of the level: wall tiles tinted by their
// texture, level sprites and the rays the renderer casts from the camera.
type viewer struct {
	cfg        *config.Config
	grid       *world.Grid
	sprites    []world.Sprite
	camera     *game.Camera
	renderer   *render.Renderer
	wallTint   []color.RGBA
	spriteTint []color.RGBA
	paused     bool
	hits       int
}

func main() {
	ensureRuntimeCWD()

	cfg := config.MustLoadConfig("config.yaml")
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, ""); err != nil {
		logger.Log.WithError(err).Fatal("Failed to configure logging")
	}

	grid, err := world.LoadGrid(cfg.Assets.Map)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load map")
	}
	textures, err := graphics.LoadTextureStore(cfg.Assets.WallAtlas, cfg.Assets.SpriteAtlas,
		graphics.RGB(cfg.Graphics.Sprite.TransparentKey))
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load textures")
	}
	renderer, err := render.NewRenderer(cfg, textures)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create renderer")
	}
	defer renderer.Stop()

	v := &viewer{
		cfg:        cfg,
		grid:       grid,
		sprites:    game.LevelSprites(cfg),
		camera:     game.NewCamera(game.StartPose(cfg, grid), cfg.Camera.TurnRate),
		renderer:   renderer,
		wallTint:   averageColors(textures.Walls),
		spriteTint: averageColors(textures.Sprites),
	}

	logger.Log.WithFields(logrus.Fields{
		"map":     cfg.Assets.Map,
		"size":    []int{grid.Width, grid.Height},
		"sprites": len(v.sprites),
	}).Info("Map viewer ready")

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raycaster Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		logger.Log.WithError(err).Fatal("Map viewer failed")
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		v.camera.Rotate(-0.03)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		v.camera.Rotate(0.03)
	}
	if !v.paused {
		v.camera.Tick()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()

	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	v.drawMapPanel(screen, padding, padding, mapAreaW, mapAreaH)
	v.drawSidebar(screen, sidebarX, padding, sidebarWidth, mapAreaH)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func (v *viewer) drawMapPanel(screen *ebiten.Image, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tileSize := min(w/v.grid.Width, h/v.grid.Height)
	if tileSize < 2 {
		tileSize = 2
	}
	originX := x + (w-v.grid.Width*tileSize)/2
	originY := y + (h-v.grid.Height*tileSize)/2
	toScreen := func(wx, wy float64) (float32, float32) {
		return float32(float64(originX) + wx*float64(tileSize)), float32(float64(originY) + wy*float64(tileSize))
	}

	floor := graphics.RGB(v.cfg.Graphics.Colors.GroundTop)
	for ty := 0; ty < v.grid.Height; ty++ {
		for tx := 0; tx < v.grid.Width; tx++ {
			cell, _ := v.grid.CellAt(tx, ty)
			drawFilledRect(screen, originX+tx*tileSize, originY+ty*tileSize, tileSize, tileSize, v.tileColor(cell, floor))
		}
	}

	pose := v.camera.Pose()
	px, py := toScreen(pose.X, pose.Y)
	v.hits = 0
	for i := 0; i < fanRays; i++ {
		column := i * v.cfg.GetScreenWidth() / fanRays
		hit, ok := v.renderer.ColumnRay(v.grid, pose, column, v.cfg.GetScreenWidth())
		if !ok {
			continue
		}
		v.hits++
		hx, hy := toScreen(hit.X, hit.Y)
		rayColor := color.RGBA{255, 230, 120, 160}
		if hit.Face == render.FaceHorizontal {
			rayColor = color.RGBA{180, 160, 90, 160}
		}
		vector.StrokeLine(screen, px, py, hx, hy, 1, rayColor, false)
	}

	for _, s := range v.sprites {
		sx, sy := toScreen(s.X, s.Y)
		vector.DrawFilledCircle(screen, sx, sy, float32(tileSize)/3, v.spriteColor(s.Texture), true)
		vector.StrokeCircle(screen, sx, sy, float32(tileSize)/3, 1, color.RGBA{0, 0, 0, 255}, true)
	}

	fx, fy := toScreen(pose.X+v.camera.GetForwardX()*0.8, pose.Y+v.camera.GetForwardY()*0.8)
	vector.StrokeLine(screen, px, py, fx, fy, 2, color.RGBA{50, 200, 255, 255}, true)
	vector.DrawFilledCircle(screen, px, py, float32(tileSize)/4, color.RGBA{50, 200, 255, 255}, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%dx%d)", v.cfg.Assets.Map, v.grid.Width, v.grid.Height), x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to turn, Space to pause, Esc to quit", x+12, y+24)
}

func (v *viewer) drawSidebar(screen *ebiten.Image, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{25, 25, 40, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	pose := v.camera.Pose()
	lines := []string{
		"Camera",
		fmt.Sprintf("  x %.2f  y %.2f", pose.X, pose.Y),
		fmt.Sprintf("  angle %.3f rad", pose.Angle),
		fmt.Sprintf("  fov %.3f rad", v.cfg.GetCameraFOV()),
		"",
		"Raycast",
		fmt.Sprintf("  march %s", v.cfg.Raycast.March),
		fmt.Sprintf("  max distance %.1f", v.cfg.GetMaxDistance()),
		fmt.Sprintf("  rays hit %d/%d", v.hits, fanRays),
		"",
		fmt.Sprintf("Sprites (%d)", len(v.sprites)),
	}
	for _, s := range v.sprites {
		lines = append(lines, fmt.Sprintf("  tex %d at %.2f, %.2f", s.Texture, s.X, s.Y))
	}
	if v.paused {
		lines = append(lines, "", "PAUSED")
	}

	lineHeight := 14
	for i, line := range lines {
		ly := y + 12 + i*lineHeight
		if ly > y+h-lineHeight {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+12, ly)
	}
}

func (v *viewer) tileColor(cell world.Cell, floor color.RGBA) color.RGBA {
	tex := cell.Texture()
	if tex < 0 {
		return floor
	}
	if tex >= len(v.wallTint) {
		return color.RGBA{255, 0, 255, 255}
	}
	return v.wallTint[tex]
}

func (v *viewer) spriteColor(tex int) color.RGBA {
	if tex < 0 || tex >= len(v.spriteTint) {
		return color.RGBA{255, 0, 255, 255}
	}
	return v.spriteTint[tex]
}

// averageColors returns one tint per atlas texture. Keyed sprite texels are
// left out of the average.
func averageColors(a *graphics.Atlas) []color.RGBA {
	tints := make([]color.RGBA, a.Count)
	for i := range tints {
		var r, g, b, n int
		for y := 0; y < a.Size; y++ {
			for x := 0; x < a.Size; x++ {
				c := a.At(i, x, y)
				if c == a.Sentinel() && c != (color.RGBA{A: 255}) {
					continue
				}
				r, g, b, n = r+int(c.R), g+int(c.G), b+int(c.B), n+1
			}
		}
		if n == 0 {
			tints[i] = a.Sentinel()
			continue
		}
		tints[i] = color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
	}
	return tints
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
