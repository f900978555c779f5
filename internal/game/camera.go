package game

import (
	"math"

	"raycaster/internal/mathutil"
	"raycaster/internal/world"
)

// Camera is the viewer the demo driver moves between frames
type Camera struct {
	X, Y     float64
	Angle    float64
	TurnRate float64 // Radians added every tick
}

// NewCamera creates a camera at pose turning by turnRate per tick
func NewCamera(pose world.Pose, turnRate float64) *Camera {
	return &Camera{X: pose.X, Y: pose.Y, Angle: pose.Angle, TurnRate: turnRate}
}

// GetForwardX returns the X component of the forward direction vector
func (c *Camera) GetForwardX() float64 {
	return math.Cos(c.Angle)
}

// GetForwardY returns the Y component of the forward direction vector
func (c *Camera) GetForwardY() float64 {
	return math.Sin(c.Angle)
}

// Rotate rotates the camera by the given angle, keeping the heading in (-Pi, Pi]
func (c *Camera) Rotate(angle float64) {
	c.Angle = mathutil.NormalizeAngle(c.Angle + angle)
}

// Tick advances the camera by one simulation step
func (c *Camera) Tick() {
	if c.TurnRate != 0 {
		c.Rotate(c.TurnRate)
	}
}

// Pose returns a read-only copy for the renderer
func (c *Camera) Pose() world.Pose {
	return world.Pose{X: c.X, Y: c.Y, Angle: c.Angle}
}
