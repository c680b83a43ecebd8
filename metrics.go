package seqmin

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
//	    binCounter   prometheus.Counter
//	    binHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordBin(windows int, duration time.Duration, err error) {
//	    p.binCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordBin is called after each binning operation.
	// windows is the number of windows processed, duration is the total
	// time taken, err is nil if successful.
	RecordBin(windows int, duration time.Duration, err error)

	// RecordSnapshotSave is called after each snapshot save.
	RecordSnapshotSave(duration time.Duration, err error)

	// RecordSnapshotLoad is called after each snapshot load.
	RecordSnapshotLoad(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBin(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordSnapshotSave(time.Duration, error) {}
func (NoopMetricsCollector) RecordSnapshotLoad(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BinCount           atomic.Int64
	BinErrors          atomic.Int64
	BinWindows         atomic.Int64
	BinTotalNanos      atomic.Int64
	SnapshotSaveCount  atomic.Int64
	SnapshotSaveErrors atomic.Int64
	SnapshotLoadCount  atomic.Int64
	SnapshotLoadErrors atomic.Int64
}

// RecordBin implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBin(windows int, duration time.Duration, err error) {
	b.BinCount.Add(1)
	b.BinWindows.Add(int64(windows))
	b.BinTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BinErrors.Add(1)
	}
}

// RecordSnapshotSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotSave(duration time.Duration, err error) {
	b.SnapshotSaveCount.Add(1)
	if err != nil {
		b.SnapshotSaveErrors.Add(1)
	}
}

// RecordSnapshotLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshotLoad(duration time.Duration, err error) {
	b.SnapshotLoadCount.Add(1)
	if err != nil {
		b.SnapshotLoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BinCount:           b.BinCount.Load(),
		BinErrors:          b.BinErrors.Load(),
		BinWindows:         b.BinWindows.Load(),
		BinAvgNanos:        b.getAvgBinNanos(),
		SnapshotSaveCount:  b.SnapshotSaveCount.Load(),
		SnapshotSaveErrors: b.SnapshotSaveErrors.Load(),
		SnapshotLoadCount:  b.SnapshotLoadCount.Load(),
		SnapshotLoadErrors: b.SnapshotLoadErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBinNanos() int64 {
	count := b.BinCount.Load()
	if count == 0 {
		return 0
	}
	return b.BinTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BinCount           int64
	BinErrors          int64
	BinWindows         int64
	BinAvgNanos        int64
	SnapshotSaveCount  int64
	SnapshotSaveErrors int64
	SnapshotLoadCount  int64
	SnapshotLoadErrors int64
}
