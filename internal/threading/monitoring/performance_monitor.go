package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks per-frame renderer timings and counters
type PerformanceMonitor struct {
	// Frame metrics
	frameCount     atomic.Uint64
	frameTime      atomic.Uint64 // nanoseconds, last frame
	totalFrameTime atomic.Uint64

	// Pass metrics (last frame)
	wallPassTime   atomic.Uint64
	spritePassTime atomic.Uint64

	// Renderer counters (last frame)
	columnsHit    atomic.Uint64
	spritesDrawn  atomic.Uint64
	spritesCulled atomic.Uint64

	// Statistics
	mutex        sync.RWMutex
	avgFrameTime float64
	startTime    time.Time

	// Configuration
	enableDetailed bool
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
	}
}

// PassTimer measures one stage of a frame
type PassTimer struct {
	startTime time.Time
	store     func(time.Duration)
}

// End records the time elapsed since the timer was started
func (pt *PassTimer) End() time.Duration {
	elapsed := time.Since(pt.startTime)
	pt.store(elapsed)
	return elapsed
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *PassTimer {
	return &PassTimer{startTime: time.Now(), store: pm.recordFrame}
}

// StartWallPass begins wall pass timing
func (pm *PerformanceMonitor) StartWallPass() *PassTimer {
	return &PassTimer{startTime: time.Now(), store: func(d time.Duration) {
		pm.wallPassTime.Store(uint64(d.Nanoseconds()))
	}}
}

// StartSpritePass begins sprite pass timing
func (pm *PerformanceMonitor) StartSpritePass() *PassTimer {
	return &PassTimer{startTime: time.Now(), store: func(d time.Duration) {
		pm.spritePassTime.Store(uint64(d.Nanoseconds()))
	}}
}

func (pm *PerformanceMonitor) recordFrame(d time.Duration) {
	ns := uint64(d.Nanoseconds())
	pm.frameTime.Store(ns)
	total := pm.totalFrameTime.Add(ns)
	count := pm.frameCount.Add(1)

	// Update average frame time
	pm.mutex.Lock()
	if pm.enableDetailed {
		pm.avgFrameTime = float64(total) / float64(count)
	}
	pm.mutex.Unlock()
}

// UpdateFrameMetrics stores the renderer counters of the last frame
func (pm *PerformanceMonitor) UpdateFrameMetrics(columnsHit, spritesDrawn, spritesCulled int) {
	pm.columnsHit.Store(uint64(columnsHit))
	pm.spritesDrawn.Store(uint64(spritesDrawn))
	pm.spritesCulled.Store(uint64(spritesCulled))
}

// FrameMetrics is a point-in-time copy of the monitor
type FrameMetrics struct {
	FrameCount      uint64
	FramesPerSecond float64
	FrameTime       time.Duration
	AvgFrameTime    time.Duration
	WallPassTime    time.Duration
	SpritePassTime  time.Duration
	ColumnsHit      uint64
	SpritesDrawn    uint64
	SpritesCulled   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	pm.mutex.RLock()
	avg := pm.avgFrameTime
	pm.mutex.RUnlock()

	// Calculate FPS
	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = 1000000000.0 / float64(frameTime) // Convert nanoseconds to FPS
	}

	return FrameMetrics{
		FrameCount:      pm.frameCount.Load(),
		FramesPerSecond: fps,
		FrameTime:       time.Duration(frameTime),
		AvgFrameTime:    time.Duration(avg),
		WallPassTime:    time.Duration(pm.wallPassTime.Load()),
		SpritePassTime:  time.Duration(pm.spritePassTime.Load()),
		ColumnsHit:      pm.columnsHit.Load(),
		SpritesDrawn:    pm.spritesDrawn.Load(),
		SpritesCulled:   pm.spritesCulled.Load(),
	}
}

// GetDetailedStats returns detailed performance statistics keyed for
// structured logging
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	m := pm.GetCurrentMetrics()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	pm.mutex.RLock()
	uptime := time.Since(pm.startTime)
	pm.mutex.RUnlock()

	return map[string]interface{}{
		"uptime_seconds":    uptime.Seconds(),
		"frame_count":       m.FrameCount,
		"fps":               m.FramesPerSecond,
		"avg_frame_time_ms": float64(m.AvgFrameTime) / float64(time.Millisecond),
		"wall_pass_ms":      float64(m.WallPassTime) / float64(time.Millisecond),
		"sprite_pass_ms":    float64(m.SpritePassTime) / float64(time.Millisecond),
		"columns_hit":       m.ColumnsHit,
		"sprites_drawn":     m.SpritesDrawn,
		"sprites_culled":    m.SpritesCulled,
		"memory_alloc_mb":   memStats.Alloc / 1024 / 1024,
		"gc_cycles":         memStats.NumGC,
		"goroutines":        runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts reports a low frame rate against minFPS
func (pm *PerformanceMonitor) CheckPerformanceAlerts(minFPS float64) []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)

	frameTime := pm.frameTime.Load()
	if frameTime > 0 {
		fps := 1000000000.0 / float64(frameTime)
		if fps < minFPS {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below target",
				Value:     fps,
				Threshold: minFPS,
				Timestamp: time.Now(),
			})
		}
	}

	return alerts
}

// EnableDetailedLogging enables/disables average tracking
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.totalFrameTime.Store(0)
	pm.wallPassTime.Store(0)
	pm.spritePassTime.Store(0)
	pm.columnsHit.Store(0)
	pm.spritesDrawn.Store(0)
	pm.spritesCulled.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
