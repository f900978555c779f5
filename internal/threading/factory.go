package threading

import (
	"raycaster/internal/threading/monitoring"
	"raycaster/internal/threading/rendering"
)

// ThreadingComponents holds the concurrency helpers shared by a renderer
type ThreadingComponents struct {
	ParallelRenderer   *rendering.ParallelRenderer
	PerformanceMonitor *monitoring.PerformanceMonitor
}

// NewThreadingComponents creates the column dispatcher for the given worker
// count together with a fresh performance monitor
func NewThreadingComponents(workers int) *ThreadingComponents {
	return &ThreadingComponents{
		ParallelRenderer:   rendering.NewParallelRenderer(workers),
		PerformanceMonitor: monitoring.NewPerformanceMonitor(),
	}
}

// Shutdown stops the worker pool and clears the counters
func (tc *ThreadingComponents) Shutdown() {
	if tc.ParallelRenderer != nil {
		tc.ParallelRenderer.Stop()
	}
	if tc.PerformanceMonitor != nil {
		tc.PerformanceMonitor.Reset()
	}
}

// GetPerformanceMetrics returns current performance metrics
func (tc *ThreadingComponents) GetPerformanceMetrics() monitoring.FrameMetrics {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.GetCurrentMetrics()
	}
	return monitoring.FrameMetrics{}
}

// GetDetailedPerformanceStats returns detailed performance statistics
func (tc *ThreadingComponents) GetDetailedPerformanceStats() map[string]interface{} {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.GetDetailedStats()
	}
	return nil
}

// CheckPerformanceAlerts returns any frame rate warnings against minFPS
func (tc *ThreadingComponents) CheckPerformanceAlerts(minFPS float64) []monitoring.PerformanceAlert {
	if tc.PerformanceMonitor != nil {
		return tc.PerformanceMonitor.CheckPerformanceAlerts(minFPS)
	}
	return nil
}
