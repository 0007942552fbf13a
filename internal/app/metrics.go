package app

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Metrics counts what happened during a session. It is logged at exit.
type Metrics struct {
	// Key handling
	keyCount   atomic.Uint64
	keyTotalNs atomic.Int64
	keyMaxNs   atomic.Int64

	// Command execution
	commandCount atomic.Uint64
	errorCount   atomic.Uint64
	bellCount    atomic.Uint64

	// External editor
	handoffCount   atomic.Uint64
	handoffTotalNs atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordKey records the time spent handling one key, including the
// commands it ran and the redisplay.
func (m *Metrics) RecordKey(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.keyCount.Add(1)
	m.keyTotalNs.Add(ns)

	for {
		old := m.keyMaxNs.Load()
		if ns <= old || m.keyMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordCommand records one dispatched command.
func (m *Metrics) RecordCommand(failed bool) {
	m.commandCount.Add(1)
	if failed {
		m.errorCount.Add(1)
	}
}

// RecordBell records a bell.
func (m *Metrics) RecordBell() {
	m.bellCount.Add(1)
}

// RecordHandoff records time spent in the external editor.
func (m *Metrics) RecordHandoff(duration time.Duration) {
	m.handoffCount.Add(1)
	m.handoffTotalNs.Add(duration.Nanoseconds())
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	keys := m.keyCount.Load()

	var avgKeyNs int64
	if keys > 0 {
		avgKeyNs = m.keyTotalNs.Load() / int64(keys)
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		KeyCount:     keys,
		AvgKeyNs:     avgKeyNs,
		MaxKeyNs:     m.keyMaxNs.Load(),
		CommandCount: m.commandCount.Load(),
		ErrorCount:   m.errorCount.Load(),
		BellCount:    m.bellCount.Load(),
		HandoffCount: m.handoffCount.Load(),
		HandoffTime:  time.Duration(m.handoffTotalNs.Load()),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	KeyCount     uint64
	AvgKeyNs     int64
	MaxKeyNs     int64
	CommandCount uint64
	ErrorCount   uint64
	BellCount    uint64
	HandoffCount uint64
	HandoffTime  time.Duration
}

// String summarizes the snapshot on one line.
func (s MetricsSnapshot) String() string {
	return fmt.Sprintf("uptime=%s keys=%d avg_key=%s max_key=%s commands=%d errors=%d bells=%d handoffs=%d handoff_time=%s",
		s.Uptime.Round(time.Millisecond), s.KeyCount,
		time.Duration(s.AvgKeyNs), time.Duration(s.MaxKeyNs),
		s.CommandCount, s.ErrorCount, s.BellCount,
		s.HandoffCount, s.HandoffTime.Round(time.Millisecond))
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

// Metrics returns the application's metrics instance.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
