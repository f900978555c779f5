package game

import (
	"raycaster/internal/config"
	"raycaster/internal/world"
)

// StartPose picks the map's '+' tile when present, else the configured start
func StartPose(cfg *config.Config, grid *world.Grid) world.Pose {
	if grid != nil && grid.HasStart() {
		return grid.StartPose(cfg.Camera.StartAngle)
	}
	return world.Pose{X: cfg.Camera.StartX, Y: cfg.Camera.StartY, Angle: cfg.Camera.StartAngle}
}

// LevelSprites converts the configured spawns into renderer sprites
func LevelSprites(cfg *config.Config) []world.Sprite {
	sprites := make([]world.Sprite, 0, len(cfg.Level.Sprites))
	for _, spawn := range cfg.Level.Sprites {
		size := spawn.Size
		if size <= 0 {
			size = float64(cfg.GetScreenHeight())
		}
		sprites = append(sprites, world.Sprite{
			Texture: spawn.Texture,
			X:       spawn.X,
			Y:       spawn.Y,
			Size:    size,
		})
	}
	return sprites
}
