package mmapvec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    growCounter   prometheus.Counter
//	    growHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordGrow(oldCap, newCap int, duration time.Duration, err error) {
//	    p.growCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSegmentCreate is called after every provider request.
	// size is the requested region size in bytes, err is nil if successful.
	RecordSegmentCreate(size int64, duration time.Duration, err error)

	// RecordGrow is called after each capacity growth attempt.
	RecordGrow(oldCap, newCap int, duration time.Duration, err error)

	// RecordShrink is called after each compaction attempt.
	RecordShrink(oldCap, newCap int, duration time.Duration, err error)

	// RecordRelease is called after each segment release.
	RecordRelease(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSegmentCreate(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordGrow(int, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordShrink(int, int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordRelease(time.Duration, error)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SegmentCreateCount  atomic.Int64
	SegmentCreateErrors atomic.Int64
	SegmentCreateNanos  atomic.Int64
	SegmentBytes        atomic.Int64
	GrowCount           atomic.Int64
	GrowErrors          atomic.Int64
	GrowTotalNanos      atomic.Int64
	ShrinkCount         atomic.Int64
	ShrinkErrors        atomic.Int64
	ReleaseCount        atomic.Int64
	ReleaseErrors       atomic.Int64
}

// RecordSegmentCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSegmentCreate(size int64, duration time.Duration, err error) {
	b.SegmentCreateCount.Add(1)
	b.SegmentCreateNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SegmentCreateErrors.Add(1)
	} else {
		b.SegmentBytes.Add(size)
	}
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(oldCap, newCap int, duration time.Duration, err error) {
	b.GrowCount.Add(1)
	b.GrowTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GrowErrors.Add(1)
	}
}

// RecordShrink implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShrink(oldCap, newCap int, duration time.Duration, err error) {
	b.ShrinkCount.Add(1)
	if err != nil {
		b.ShrinkErrors.Add(1)
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(duration time.Duration, err error) {
	b.ReleaseCount.Add(1)
	if err != nil {
		b.ReleaseErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SegmentCreateCount:    b.SegmentCreateCount.Load(),
		SegmentCreateErrors:   b.SegmentCreateErrors.Load(),
		SegmentCreateAvgNanos: b.getAvgSegmentCreateNanos(),
		SegmentBytes:          b.SegmentBytes.Load(),
		GrowCount:             b.GrowCount.Load(),
		GrowErrors:            b.GrowErrors.Load(),
		GrowAvgNanos:          b.getAvgGrowNanos(),
		ShrinkCount:           b.ShrinkCount.Load(),
		ShrinkErrors:          b.ShrinkErrors.Load(),
		ReleaseCount:          b.ReleaseCount.Load(),
		ReleaseErrors:         b.ReleaseErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSegmentCreateNanos() int64 {
	count := b.SegmentCreateCount.Load()
	if count == 0 {
		return 0
	}
	return b.SegmentCreateNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgGrowNanos() int64 {
	count := b.GrowCount.Load()
	if count == 0 {
		return 0
	}
	return b.GrowTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SegmentCreateCount    int64
	SegmentCreateErrors   int64
	SegmentCreateAvgNanos int64
	SegmentBytes          int64
	GrowCount             int64
	GrowErrors            int64
	GrowAvgNanos          int64
	ShrinkCount           int64
	ShrinkErrors          int64
	ReleaseCount          int64
	ReleaseErrors         int64
}
