package mathutil

import "math"

// NormalizeAngle maps an angle in radians into (-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
