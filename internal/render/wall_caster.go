package render

import (
	"math"

	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
	"raycaster/internal/world"
)

// MapQuery is the read-only view of the tile map the caster marches through.
// ok is false for coordinates outside the map.
type MapQuery interface {
	CellAt(x, y int) (cell world.Cell, ok bool)
}

// emptyMap stands in when a scene carries no map
type emptyMap struct{}

func (emptyMap) CellAt(int, int) (world.Cell, bool) {
	return world.Empty, false
}

// Face tells which family of grid lines a ray crossed to reach a wall.
// Orientation is as seen on the top-down map: a vertical face lies on an x
// grid line (constant x) and gets the vertical shading factor.
type Face int

const (
	// FaceVertical is a wall surface lying on an x grid line
	FaceVertical Face = iota
	// FaceHorizontal is a wall surface lying on a y grid line
	FaceHorizontal
)

func (f Face) String() string {
	if f == FaceVertical {
		return "vertical"
	}
	return "horizontal"
}

// Hit describes where a ray first met a wall.
type Hit struct {
	Distance  float64 // Along the ray from the viewer
	Projected float64 // Distance with fisheye distortion removed
	Cell      world.Cell
	X, Y      float64 // Hit point in tile units
	Face      Face
}

// TextureOffset is the signed offset of the hit point from the nearest tile
// center line along the wall surface, in [-0.5, 0.5).
func (h Hit) TextureOffset() float64 {
	if h.Face == FaceVertical {
		return h.Y - math.Floor(h.Y+0.5)
	}
	return h.X - math.Floor(h.X+0.5)
}

// wrapTexCoord scales a fractional offset to texture pixels and wraps the
// result into [0, size).
func wrapTexCoord(offset float64, size int) int {
	if size <= 0 {
		return 0
	}
	tex := int(offset * float64(size))
	return ((tex % size) + size) % size
}

// cellAt treats cells outside the map as empty floor
func cellAt(m MapQuery, x, y int) world.Cell {
	cell, ok := m.CellAt(x, y)
	if !ok {
		return world.Empty
	}
	return cell
}

// faceFromStep picks the surface orientation from the tile indices that
// changed on the last march step: a changed x index means the ray crossed an
// x grid line, so the face is vertical. When both or neither changed the axis
// with the larger offset from the tile center line decides.
func faceFromStep(crossedX, crossedY bool, x, y float64) Face {
	switch {
	case crossedX && !crossedY:
		return FaceVertical
	case crossedY && !crossedX:
		return FaceHorizontal
	}
	fx := x - math.Floor(x+0.5)
	fy := y - math.Floor(y+0.5)
	if math.Abs(fy) > math.Abs(fx) {
		return FaceVertical
	}
	return FaceHorizontal
}

// stepMarch advances the ray tip in fixed increments until it lands in a wall
// or passes maxDistance.
func stepMarch(m MapQuery, originX, originY, angle, step, maxDistance float64) (Hit, bool) {
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	prevX, prevY := mathutil.FloorInt(originX), mathutil.FloorInt(originY)
	maxSteps := int(math.Ceil(maxDistance / step))

	for i := 0; i <= maxSteps; i++ {
		t := float64(i) * step
		if t > maxDistance {
			break
		}
		x := originX + t*dirX
		y := originY + t*dirY
		tileX, tileY := mathutil.FloorInt(x), mathutil.FloorInt(y)

		if cell := cellAt(m, tileX, tileY); cell.IsWall() {
			return Hit{
				Distance: t,
				Cell:     cell,
				X:        x,
				Y:        y,
				Face:     faceFromStep(tileX != prevX, tileY != prevY, x, y),
			}, true
		}
		prevX, prevY = tileX, tileY
	}

	return Hit{}, false
}

// ddaMarch walks the grid lines the ray crosses, in order, and stops at the
// first wall tile entered.
func ddaMarch(m MapQuery, originX, originY, angle, maxDistance float64) (Hit, bool) {
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	tileX, tileY := mathutil.FloorInt(originX), mathutil.FloorInt(originY)

	// Viewer standing inside a wall
	if cell := cellAt(m, tileX, tileY); cell.IsWall() {
		return Hit{Cell: cell, X: originX, Y: originY, Face: faceFromStep(false, false, originX, originY)}, true
	}

	// Calculate delta distances - how far the ray travels to cross one grid line
	deltaDistanceX, deltaDistanceY := 1e30, 1e30
	if dirX != 0 {
		deltaDistanceX = math.Abs(1 / dirX)
	}
	if dirY != 0 {
		deltaDistanceY = math.Abs(1 / dirY)
	}

	// Calculate step directions and initial distances to next grid lines
	var stepX, stepY int
	var sideDistanceX, sideDistanceY float64
	if dirX < 0 {
		stepX = -1
		sideDistanceX = (originX - float64(tileX)) * deltaDistanceX
	} else {
		stepX = 1
		sideDistanceX = (float64(tileX) + 1 - originX) * deltaDistanceX
	}
	if dirY < 0 {
		stepY = -1
		sideDistanceY = (originY - float64(tileY)) * deltaDistanceY
	} else {
		stepY = 1
		sideDistanceY = (float64(tileY) + 1 - originY) * deltaDistanceY
	}

	// Every grid line within maxDistance, plus margin
	maxSteps := 2*int(math.Ceil(maxDistance)) + 2
	for i := 0; i < maxSteps; i++ {
		var t float64
		var face Face
		if sideDistanceX < sideDistanceY {
			t = sideDistanceX
			sideDistanceX += deltaDistanceX
			tileX += stepX
			face = FaceVertical
		} else {
			t = sideDistanceY
			sideDistanceY += deltaDistanceY
			tileY += stepY
			face = FaceHorizontal
		}

		if t > maxDistance {
			return Hit{}, false
		}

		if cell := cellAt(m, tileX, tileY); cell.IsWall() {
			return Hit{
				Distance: t,
				Cell:     cell,
				X:        originX + t*dirX,
				Y:        originY + t*dirY,
				Face:     face,
			}, true
		}
	}

	return Hit{}, false
}

// rayAngle interpolates the column's ray from view-fov/2 toward view+fov/2.
// The center column of an even-width screen gets the view angle exactly.
func (r *Renderer) rayAngle(pose world.Pose, column, width int) float64 {
	return pose.Angle + r.fov*(float64(column)/float64(width)-0.5)
}

// castRay finds the first wall along rayAngle and fills in the projected
// distance, guarded to at least one ray step.
func (r *Renderer) castRay(m MapQuery, pose world.Pose, rayAngle float64) (Hit, bool) {
	var hit Hit
	var ok bool
	if r.march == config.MarchDDA {
		hit, ok = ddaMarch(m, pose.X, pose.Y, rayAngle, r.maxDistance)
	} else {
		hit, ok = stepMarch(m, pose.X, pose.Y, rayAngle, r.rayStep, r.maxDistance)
	}
	if !ok {
		return Hit{}, false
	}

	hit.Projected = hit.Distance * math.Cos(rayAngle-pose.Angle)
	if hit.Projected < r.rayStep {
		hit.Projected = r.rayStep
	}
	return hit, true
}

// ColumnRay casts the ray of one screen column without drawing anything.
func (r *Renderer) ColumnRay(m MapQuery, pose world.Pose, column, width int) (Hit, bool) {
	if m == nil {
		m = emptyMap{}
	}
	return r.castRay(m, pose, r.rayAngle(pose, column, width))
}

func (r *Renderer) shadeFactor(face Face) float64 {
	if face == FaceVertical {
		return r.shadeVertical
	}
	return r.shadeHorizontal
}

// castColumn renders one full screen column and records its depth. It reports
// whether the ray hit a wall.
func (r *Renderer) castColumn(fb *graphics.Framebuffer, m MapQuery, pose world.Pose, column int) bool {
	height := fb.Height()
	hit, ok := r.castRay(m, pose, r.rayAngle(pose, column, fb.Width()))
	if !ok {
		r.depth.Set(column, r.maxDistance)
		r.fillColumn(fb, column, height/2, 0)
		return false
	}

	r.depth.Set(column, hit.Projected)
	wallHeight := int(float64(height) / hit.Projected)
	wallTop := height/2 - wallHeight/2
	r.fillColumn(fb, column, wallTop, wallHeight)
	r.drawWallSlice(fb, column, wallTop, wallHeight, hit)
	return true
}

// drawWallSlice samples the wall texture for the visible rows of the slice
func (r *Renderer) drawWallSlice(fb *graphics.Framebuffer, column, wallTop, wallHeight int, hit Hit) {
	if wallHeight <= 0 {
		return
	}
	walls := r.textures.Walls
	texture := hit.Cell.Texture()
	texX := wrapTexCoord(hit.TextureOffset(), walls.Size)
	factor := r.shadeFactor(hit.Face)

	start := mathutil.IntMax(wallTop, 0)
	end := mathutil.IntMin(wallTop+wallHeight, fb.Height())
	for row := start; row < end; row++ {
		texY := (row - wallTop) * walls.Size / wallHeight
		fb.Set(column, row, graphics.Shade(walls.At(texture, texX, texY), factor))
	}
}
