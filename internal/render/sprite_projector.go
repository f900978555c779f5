package render

import (
	"cmp"
	"math"
	"slices"

	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
	"raycaster/internal/world"
)

// drawSprite projects one billboard and blits the columns that pass the depth
// test. It returns false when the sprite is culled: outside the field of view
// or on top of the viewer.
func (r *Renderer) drawSprite(fb *graphics.Framebuffer, pose world.Pose, sprite world.Sprite) bool {
	dx := sprite.X - pose.X
	dy := sprite.Y - pose.Y
	distance := math.Hypot(dx, dy)
	if distance <= 0 {
		return false
	}

	delta := mathutil.NormalizeAngle(math.Atan2(dy, dx) - pose.Angle)
	if math.Abs(delta) > r.fov/2 {
		return false
	}

	width, height := fb.Width(), fb.Height()
	// Clamp in float space: Size/distance overflows int for a sprite on the viewer
	size := int(math.Min(float64(r.maxSpriteWidth), sprite.Size/distance))
	if size <= 0 {
		return true
	}

	// Sprites smaller than the screen sink toward the floor line as they near
	bias := (float64(height) - sprite.Size) / 2 * r.verticalBias
	hOffset := int(delta/r.fov*float64(width) + float64(width)/2 - float64(size)/2)
	vOffset := int(mathutil.Clamp(float64(height)/2-float64(size)/2+bias/distance, -float64(size), float64(height)))

	atlas := r.textures.Sprites
	for i := 0; i < size; i++ {
		column := hOffset + i
		if column < 0 || column >= width {
			continue
		}
		if !(distance < r.depth.At(column)) {
			continue
		}
		texX := i * atlas.Size / size
		for j := 0; j < size; j++ {
			row := vOffset + j
			if row < 0 || row >= height {
				continue
			}
			c := atlas.At(sprite.Texture, texX, j*atlas.Size/size)
			if c == r.transparentKey {
				continue
			}
			fb.Set(column, row, c)
		}
	}
	return true
}

// spriteOrder returns the draw order for the frame: as supplied, or far to
// near when distance sorting is enabled. Equal distances keep supplied order.
func (r *Renderer) spriteOrder(pose world.Pose, sprites []world.Sprite) []world.Sprite {
	if !r.sortSprites || len(sprites) < 2 {
		return sprites
	}
	r.ordered = append(r.ordered[:0], sprites...)
	slices.SortStableFunc(r.ordered, func(a, b world.Sprite) int {
		return cmp.Compare(
			math.Hypot(b.X-pose.X, b.Y-pose.Y),
			math.Hypot(a.X-pose.X, a.Y-pose.Y),
		)
	})
	return r.ordered
}

// drawWeapon blits the weapon texture into its fixed screen square. It is an
// overlay: the depth buffer is not consulted and only key texels show through.
func (r *Renderer) drawWeapon(fb *graphics.Framebuffer) {
	size := r.weapon.Size
	if !r.weapon.Enabled || size <= 0 {
		return
	}

	width, height := fb.Width(), fb.Height()
	left := width/2 + r.weapon.XOffset
	top := height - size
	atlas := r.textures.Sprites

	for i := 0; i < size; i++ {
		x := left + i
		if x < 0 || x >= width {
			continue
		}
		texX := i * atlas.Size / size
		for j := 0; j < size; j++ {
			y := top + j
			if y < 0 {
				continue
			}
			c := atlas.At(r.weapon.Texture, texX, j*atlas.Size/size)
			if c == r.transparentKey {
				continue
			}
			fb.Set(x, y, c)
		}
	}
}
