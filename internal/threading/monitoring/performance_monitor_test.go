package monitoring

import (
	"sync"
	"testing"
	"time"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()

	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}

	if !pm.enableDetailed {
		t.Error("Expected enableDetailed to be true")
	}

	// Check that start time is recent
	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	frameTimer := pm.StartFrame()
	time.Sleep(10 * time.Millisecond) // Simulate some work
	elapsed := frameTimer.End()

	if pm.frameCount.Load() != 1 {
		t.Errorf("Expected frame count to be 1, got %d", pm.frameCount.Load())
	}

	frameTime := pm.frameTime.Load()
	if frameTime != uint64(elapsed.Nanoseconds()) {
		t.Errorf("Expected stored frame time %d to match returned %d", frameTime, elapsed.Nanoseconds())
	}

	// Frame time should be at least 10ms (in nanoseconds)
	if frameTime < uint64(10*time.Millisecond) {
		t.Errorf("Frame time too small: %d ns", frameTime)
	}

	metrics := pm.GetCurrentMetrics()
	if metrics.AvgFrameTime != time.Duration(frameTime) {
		t.Errorf("Average of one frame should equal that frame, got %v", metrics.AvgFrameTime)
	}
	if metrics.FramesPerSecond <= 0 || metrics.FramesPerSecond > 100 {
		t.Errorf("Unexpected FPS %f for a frame of at least 10ms", metrics.FramesPerSecond)
	}
}

func TestPerformanceMonitorPassTimers(t *testing.T) {
	pm := NewPerformanceMonitor()

	wall := pm.StartWallPass()
	time.Sleep(2 * time.Millisecond)
	wall.End()

	sprite := pm.StartSpritePass()
	sprite.End()

	metrics := pm.GetCurrentMetrics()
	if metrics.WallPassTime < 2*time.Millisecond {
		t.Errorf("Wall pass time too small: %v", metrics.WallPassTime)
	}
	if metrics.SpritePassTime > metrics.WallPassTime {
		t.Errorf("Empty sprite pass (%v) should be shorter than wall pass (%v)", metrics.SpritePassTime, metrics.WallPassTime)
	}
	if metrics.FrameCount != 0 {
		t.Errorf("Pass timers must not count frames, got %d", metrics.FrameCount)
	}
}

func TestPerformanceMonitorFrameMetrics(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.UpdateFrameMetrics(640, 3, 1)

	metrics := pm.GetCurrentMetrics()
	if metrics.ColumnsHit != 640 || metrics.SpritesDrawn != 3 || metrics.SpritesCulled != 1 {
		t.Errorf("Unexpected counters: %+v", metrics)
	}

	stats := pm.GetDetailedStats()
	for _, key := range []string{"fps", "columns_hit", "sprites_drawn", "sprites_culled", "wall_pass_ms", "goroutines"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("Detailed stats missing %q", key)
		}
	}
	if stats["columns_hit"].(uint64) != 640 {
		t.Errorf("Expected columns_hit 640, got %v", stats["columns_hit"])
	}
}

func TestPerformanceMonitorAlerts(t *testing.T) {
	pm := NewPerformanceMonitor()

	if alerts := pm.CheckPerformanceAlerts(30); len(alerts) != 0 {
		t.Errorf("Expected no alerts before the first frame, got %d", len(alerts))
	}

	timer := pm.StartFrame()
	time.Sleep(20 * time.Millisecond)
	timer.End()

	alerts := pm.CheckPerformanceAlerts(1000)
	if len(alerts) != 1 || alerts[0].Type != "low_fps" {
		t.Fatalf("Expected one low_fps alert, got %+v", alerts)
	}
	if alerts[0].Threshold != 1000 {
		t.Errorf("Expected threshold 1000, got %f", alerts[0].Threshold)
	}
}

func TestPerformanceMonitorDetailedLoggingToggle(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.EnableDetailedLogging(false)

	pm.StartFrame().End()

	if got := pm.GetCurrentMetrics().AvgFrameTime; got != 0 {
		t.Errorf("Average should not update while detailed tracking is off, got %v", got)
	}
	if pm.frameCount.Load() != 1 {
		t.Error("Frames are still counted with detailed tracking off")
	}
}

func TestPerformanceMonitorReset(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.StartFrame().End()
	pm.UpdateFrameMetrics(10, 2, 2)

	pm.Reset()

	metrics := pm.GetCurrentMetrics()
	if metrics.FrameCount != 0 || metrics.FrameTime != 0 || metrics.AvgFrameTime != 0 {
		t.Errorf("Expected zeroed frame metrics after reset, got %+v", metrics)
	}
	if metrics.ColumnsHit != 0 || metrics.SpritesDrawn != 0 || metrics.SpritesCulled != 0 {
		t.Errorf("Expected zeroed counters after reset, got %+v", metrics)
	}
}

func TestPerformanceMonitorConcurrentFrames(t *testing.T) {
	pm := NewPerformanceMonitor()

	const goroutines = 8
	const framesEach = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < framesEach; j++ {
				pm.StartFrame().End()
				pm.UpdateFrameMetrics(j, j, j)
				_ = pm.GetCurrentMetrics()
			}
		}()
	}
	wg.Wait()

	if got := pm.frameCount.Load(); got != goroutines*framesEach {
		t.Errorf("Expected %d frames, got %d", goroutines*framesEach, got)
	}
}
