package mathutil

// Clamp limits v to [lo, hi]. Infinities clamp to the nearer bound.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
