package render

// DepthBuffer holds one wall distance per screen column. The wall pass writes
// it and the sprite pass reads it within the same frame.
type DepthBuffer struct {
	values []float64
}

// NewDepthBuffer allocates a buffer for width columns
func NewDepthBuffer(width int) *DepthBuffer {
	return &DepthBuffer{values: make([]float64, width)}
}

func (d *DepthBuffer) Len() int {
	return len(d.values)
}

// Reset sets every column to the far plane
func (d *DepthBuffer) Reset(far float64) {
	for i := range d.values {
		d.values[i] = far
	}
}

// At returns the stored distance, or 0 outside the buffer so nothing passes a
// depth test there.
func (d *DepthBuffer) At(column int) float64 {
	if column < 0 || column >= len(d.values) {
		return 0
	}
	return d.values[column]
}

// Set stores the distance for one column; out-of-range writes are dropped.
func (d *DepthBuffer) Set(column int, distance float64) {
	if column < 0 || column >= len(d.values) {
		return
	}
	d.values[column] = distance
}
