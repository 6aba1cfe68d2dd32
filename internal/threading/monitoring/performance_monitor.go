package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// smoothing is the weight of the newest sample in the running averages.
const smoothing = 0.1

// PerformanceMonitor tracks frame, raycast and paint timings
type PerformanceMonitor struct {
	frameCount  atomic.Uint64
	frameTime   atomic.Uint64 // nanoseconds, last frame
	raycastTime atomic.Uint64 // nanoseconds, last cast pass
	paintTime   atomic.Uint64 // nanoseconds, last paint pass

	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	avgPaintTime   float64
	startTime      time.Time
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
	}
}

// Timer measures one section of a frame.
type Timer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
	record    func(pm *PerformanceMonitor, d time.Duration)
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *Timer {
	return &Timer{monitor: pm, startTime: time.Now(), record: (*PerformanceMonitor).recordFrame}
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *Timer {
	return &Timer{monitor: pm, startTime: time.Now(), record: (*PerformanceMonitor).recordRaycast}
}

// StartPaint begins column painting timing
func (pm *PerformanceMonitor) StartPaint() *Timer {
	return &Timer{monitor: pm, startTime: time.Now(), record: (*PerformanceMonitor).recordPaint}
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.startTime)
	t.record(t.monitor, d)
	return d
}

func (pm *PerformanceMonitor) recordFrame(d time.Duration) {
	pm.frameTime.Store(uint64(d.Nanoseconds()))
	count := pm.frameCount.Add(1)

	pm.mutex.Lock()
	pm.avgFrameTime = average(pm.avgFrameTime, float64(d.Nanoseconds()), count == 1)
	pm.mutex.Unlock()
}

func (pm *PerformanceMonitor) recordRaycast(d time.Duration) {
	prev := pm.raycastTime.Swap(uint64(d.Nanoseconds()))

	pm.mutex.Lock()
	pm.avgRaycastTime = average(pm.avgRaycastTime, float64(d.Nanoseconds()), prev == 0)
	pm.mutex.Unlock()
}

func (pm *PerformanceMonitor) recordPaint(d time.Duration) {
	prev := pm.paintTime.Swap(uint64(d.Nanoseconds()))

	pm.mutex.Lock()
	pm.avgPaintTime = average(pm.avgPaintTime, float64(d.Nanoseconds()), prev == 0)
	pm.mutex.Unlock()
}

func average(avg, sample float64, first bool) float64 {
	if first {
		return sample
	}
	return avg + (sample-avg)*smoothing
}

// FrameMetrics is a snapshot of the latest timings.
type FrameMetrics struct {
	FrameTime     time.Duration
	RaycastTime   time.Duration
	PaintTime     time.Duration
	MemoryUsageMB uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() FrameMetrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return FrameMetrics{
		FrameTime:     time.Duration(pm.frameTime.Load()),
		RaycastTime:   time.Duration(pm.raycastTime.Load()),
		PaintTime:     time.Duration(pm.paintTime.Load()),
		MemoryUsageMB: memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	currentFPS := 0.0
	if ft := pm.frameTime.Load(); ft > 0 {
		currentFPS = float64(time.Second) / float64(ft)
	}

	return map[string]interface{}{
		"uptime_seconds":      time.Since(pm.startTime).Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   pm.avgFrameTime / 1e6,
		"avg_raycast_time_ms": pm.avgRaycastTime / 1e6,
		"avg_paint_time_ms":   pm.avgPaintTime / 1e6,
		"current_fps":         currentFPS,
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
		"cpu_cores":           runtime.NumCPU(),
		"goroutines":          runtime.NumGoroutine(),
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

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		fps := float64(time.Second) / float64(frameTime)
		if fps < 30 {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: 30,
				Timestamp: now,
			})
		}
	}

	// Casting alone taking more than half a 60 Hz frame
	if rt := time.Duration(pm.raycastTime.Load()); rt > 8*time.Millisecond {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_raycast",
			Message:   "Ray casting takes longer than 8ms",
			Value:     float64(rt) / 1e6,
			Threshold: 8,
			Timestamp: now,
		})
	}

	return alerts
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.paintTime.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.avgPaintTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
