// Package game drives the renderer: it owns the camera, the framebuffer and
// the loop that hands finished frames to a window, a terminal or image files.
package game

import (
	"context"
	"time"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/render"
	"raycaster/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// Game is the demo session: one map, one camera, a fixed sprite list
type Game struct {
	cfg      *config.Config
	grid     *world.Grid
	sprites  []world.Sprite
	camera   *Camera
	renderer *render.Renderer
	fb       *graphics.Framebuffer

	frames    int
	lastStats render.FrameStats
	lastAlert time.Time
	log       *logrus.Entry

	// Cancelled by the process signal handler; ends the window loop
	ctx context.Context
}

// NewGame wires the renderer to the loaded map and textures
func NewGame(cfg *config.Config, grid *world.Grid, textures *graphics.TextureStore) (*Game, error) {
	r, err := render.NewRenderer(cfg, textures)
	if err != nil {
		return nil, err
	}
	// Averages are only read by the periodic stats log
	r.Monitor().EnableDetailedLogging(cfg.Debug.StatsInterval > 0)

	g := &Game{
		cfg:      cfg,
		grid:     grid,
		sprites:  LevelSprites(cfg),
		camera:   NewCamera(StartPose(cfg, grid), cfg.Camera.TurnRate),
		renderer: r,
		fb:       graphics.NewFramebuffer(cfg.GetScreenWidth(), cfg.GetScreenHeight()),
		log:      logger.Component("game"),
	}

	pose := g.camera.Pose()
	g.log.WithFields(logrus.Fields{
		"x":       pose.X,
		"y":       pose.Y,
		"angle":   pose.Angle,
		"sprites": len(g.sprites),
	}).Info("Game created")
	return g, nil
}

// Scene snapshots the state the renderer reads for one frame
func (g *Game) Scene() world.Scene {
	return world.Scene{Map: g.grid, Pose: g.camera.Pose(), Sprites: g.sprites}
}

// Camera exposes the viewer for drivers that move it
func (g *Game) Camera() *Camera {
	return g.camera
}

// Framebuffer returns the surface the last frame was drawn into
func (g *Game) Framebuffer() *graphics.Framebuffer {
	return g.fb
}

// Frames returns how many frames were rendered
func (g *Game) Frames() int {
	return g.frames
}

// RenderFrame draws the current scene and the optional stats overlay
func (g *Game) RenderFrame() render.FrameStats {
	g.lastStats = g.renderer.RenderFrame(g.fb, g.Scene())
	g.frames++

	if g.cfg.Debug.ShowStats {
		drawOverlay(g.fb, statsLine(g.lastStats, g.renderer.Threading().GetPerformanceMetrics()))
	}
	g.maybeLogStats()
	return g.lastStats
}

// Update handles one tick of simulation
func (g *Game) Update() error {
	if g.ctx != nil && g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.camera.Tick()
	return nil
}

// Draw renders a frame and uploads it to the window
func (g *Game) Draw(screen *ebiten.Image) {
	g.RenderFrame()
	screen.WritePixels(g.fb.Pix())
}

// Layout returns the framebuffer size; ebiten scales it to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.fb.Width(), g.fb.Height()
}

// Close stops the renderer's workers
func (g *Game) Close() {
	g.renderer.Stop()
}
