package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics tracks render loop performance.
// Counters are atomic so snapshots may be taken from any goroutine.
type Metrics struct {
	// Frame timing
	frameCount    atomic.Uint64
	frameTotalNs  atomic.Int64
	frameMinNs    atomic.Int64
	frameMaxNs    atomic.Int64
	lastFrameNs   atomic.Int64
	skippedFrames atomic.Uint64

	// Key handling
	inputCount   atomic.Uint64
	inputTotalNs atomic.Int64

	// Source reloads
	reloadCount  atomic.Uint64
	reloadFailed atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records the duration of a rendered frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordSkippedFrame records a tick whose frame was not rendered.
func (m *Metrics) RecordSkippedFrame() {
	m.skippedFrames.Add(1)
}

// RecordInput records key handling timing.
func (m *Metrics) RecordInput(duration time.Duration) {
	m.inputCount.Add(1)
	m.inputTotalNs.Add(duration.Nanoseconds())
}

// RecordReload records a source reload attempt.
func (m *Metrics) RecordReload(err error) {
	m.reloadCount.Add(1)
	if err != nil {
		m.reloadFailed.Add(1)
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()
	inputCount := m.inputCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}

	var avgInputNs int64
	if inputCount > 0 {
		avgInputNs = m.inputTotalNs.Load() / int64(inputCount)
	}

	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		SkippedFrames:  m.skippedFrames.Load(),
		InputCount:     inputCount,
		AvgInputTimeNs: avgInputNs,
		ReloadCount:    m.reloadCount.Load(),
		ReloadFailed:   m.reloadFailed.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64
	SkippedFrames  uint64
	InputCount     uint64
	AvgInputTimeNs int64
	ReloadCount    uint64
	ReloadFailed   uint64
}

// SkipRate returns the percentage of ticks whose frame was skipped.
func (s MetricsSnapshot) SkipRate() float64 {
	total := s.FrameCount + s.SkippedFrames
	if total == 0 {
		return 0
	}
	return float64(s.SkippedFrames) / float64(total) * 100
}

// String summarizes the snapshot on one line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime=%s frames=%d skipped=%d (%.1f%%) avg_frame=%s max_frame=%s keys=%d reloads=%d/%d",
		s.Uptime.Round(time.Millisecond),
		s.FrameCount,
		s.SkippedFrames,
		s.SkipRate(),
		time.Duration(s.AvgFrameTimeNs),
		time.Duration(s.MaxFrameTimeNs),
		s.InputCount,
		s.ReloadCount-s.ReloadFailed,
		s.ReloadCount,
	)
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
