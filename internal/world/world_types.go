package world

// Cell is one map tile as written in the map file: a space for empty floor or a
// digit naming the wall texture.
type Cell byte

// Empty is walkable open space.
const Empty Cell = ' '

// IsWall reports whether the cell blocks rays.
func (c Cell) IsWall() bool {
	return c >= '0' && c <= '9'
}

// Texture returns the wall texture index encoded by the cell, or -1 for
// cells that are not walls.
func (c Cell) Texture() int {
	if !c.IsWall() {
		return -1
	}
	return int(c - '0')
}

// Pose is the viewer position in tile units plus a view angle in radians.
type Pose struct {
	X     float64
	Y     float64
	Angle float64
}

// Sprite is a billboard drawn at a world position.
type Sprite struct {
	Texture int
	X       float64
	Y       float64
	Size    float64 // Nominal screen size at distance 1
}

// Scene is the read-only snapshot handed to the renderer for one frame.
type Scene struct {
	Map     *Grid
	Pose    Pose
	Sprites []Sprite
}
