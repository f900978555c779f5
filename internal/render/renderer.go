// Package render turns a tile map, a viewer pose and a list of billboard
// sprites into a framebuffer image, one frame per call.
package render

import (
	"errors"
	"image/color"
	"sync/atomic"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/threading"
	"raycaster/internal/threading/monitoring"
	"raycaster/internal/world"

	"github.com/sirupsen/logrus"
)

// FrameStats summarises one rendered frame
type FrameStats struct {
	ColumnsHit    int
	SpritesDrawn  int
	SpritesCulled int
}

// Renderer owns the per-frame scratch state: depth buffer, gradient rows and
// the column worker pool. Textures are borrowed and never released here.
type Renderer struct {
	fov         float64
	march       string
	rayStep     float64
	maxDistance float64

	shadeVertical   float64
	shadeHorizontal float64

	transparentKey color.RGBA
	maxSpriteWidth int
	verticalBias   float64
	sortSprites    bool
	weapon         config.WeaponConfig

	skyTop, skyBottom       color.RGBA
	groundTop, groundBottom color.RGBA
	sky, ground             graphics.Gradient
	gradientHeight          int

	textures  *graphics.TextureStore
	depth     *DepthBuffer
	threading *threading.ThreadingComponents
	ordered   []world.Sprite
}

// NewRenderer creates a renderer from validated configuration
func NewRenderer(cfg *config.Config, textures *graphics.TextureStore) (*Renderer, error) {
	if textures == nil || textures.Walls == nil || textures.Sprites == nil {
		return nil, errors.New("renderer requires wall and sprite atlases")
	}

	colors := cfg.Graphics.Colors
	r := &Renderer{
		fov:             cfg.GetCameraFOV(),
		march:           cfg.Raycast.March,
		rayStep:         cfg.Raycast.RayStep,
		maxDistance:     cfg.GetMaxDistance(),
		shadeVertical:   cfg.Graphics.Shading.Vertical,
		shadeHorizontal: cfg.Graphics.Shading.Horizontal,
		transparentKey:  graphics.RGB(cfg.Graphics.Sprite.TransparentKey),
		maxSpriteWidth:  cfg.Graphics.Sprite.MaxWidth,
		verticalBias:    cfg.Graphics.Sprite.VerticalBias,
		sortSprites:     cfg.Graphics.Sprite.SortByDistance,
		weapon:          cfg.Graphics.Weapon,
		skyTop:          graphics.RGB(colors.SkyTop),
		skyBottom:       graphics.RGB(colors.SkyBottom),
		groundTop:       graphics.RGB(colors.GroundTop),
		groundBottom:    graphics.RGB(colors.GroundBottom),
		textures:        textures,
		threading:       threading.NewThreadingComponents(cfg.GetWorkers()),
	}
	r.prepare(cfg.GetScreenWidth(), cfg.GetScreenHeight())

	logger.Component("renderer").WithFields(logrus.Fields{
		"march":        r.march,
		"fov":          r.fov,
		"ray_step":     r.rayStep,
		"max_distance": r.maxDistance,
		"workers":      r.threading.ParallelRenderer.Workers(),
	}).Info("Renderer initialized")
	return r, nil
}

// prepare sizes the depth buffer and gradient rows for the target surface
func (r *Renderer) prepare(width, height int) {
	if r.depth == nil || r.depth.Len() != width {
		r.depth = NewDepthBuffer(width)
	}
	if r.gradientHeight != height {
		r.sky = graphics.NewGradient(r.skyTop, r.skyBottom, height)
		r.ground = graphics.NewGradient(r.groundTop, r.groundBottom, height)
		r.gradientHeight = height
	}
}

// RenderFrame draws scene into fb: clear, wall pass, sprite pass, then the
// optional weapon overlay. The wall pass may spread columns over workers but
// always completes before any sprite is drawn.
func (r *Renderer) RenderFrame(fb *graphics.Framebuffer, scene world.Scene) FrameStats {
	monitor := r.threading.PerformanceMonitor
	frameTimer := monitor.StartFrame()

	width := fb.Width()
	r.prepare(width, fb.Height())
	fb.Clear(color.RGBA{A: 255})
	r.depth.Reset(r.maxDistance)

	var m MapQuery = emptyMap{}
	if scene.Map != nil {
		m = scene.Map
	}

	var stats FrameStats
	var columnsHit atomic.Int64
	wallTimer := monitor.StartWallPass()
	r.threading.ParallelRenderer.RenderColumns(width, func(column int) {
		if r.castColumn(fb, m, scene.Pose, column) {
			columnsHit.Add(1)
		}
	})
	wallTimer.End()
	stats.ColumnsHit = int(columnsHit.Load())

	spriteTimer := monitor.StartSpritePass()
	for _, sprite := range r.spriteOrder(scene.Pose, scene.Sprites) {
		if r.drawSprite(fb, scene.Pose, sprite) {
			stats.SpritesDrawn++
		} else {
			stats.SpritesCulled++
		}
	}
	r.drawWeapon(fb)
	spriteTimer.End()

	monitor.UpdateFrameMetrics(stats.ColumnsHit, stats.SpritesDrawn, stats.SpritesCulled)
	frameTimer.End()
	return stats
}

// Depth exposes the depth buffer of the last frame
func (r *Renderer) Depth() *DepthBuffer {
	return r.depth
}

// Monitor returns the frame timing monitor
func (r *Renderer) Monitor() *monitoring.PerformanceMonitor {
	return r.threading.PerformanceMonitor
}

// Threading returns the worker and monitoring components
func (r *Renderer) Threading() *threading.ThreadingComponents {
	return r.threading
}

// Stop releases the column workers
func (r *Renderer) Stop() {
	r.threading.Shutdown()
}
