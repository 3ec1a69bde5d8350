package lazymat

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
//	    reduceHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordReduce(b lazymat.Backend, rows, cols int, d time.Duration) {
//	    p.reduceHistogram.WithLabelValues(b.String()).Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordReduce is called after each full reduction with the backend
	// that executed it.
	RecordReduce(backend Backend, rows, cols int, duration time.Duration)

	// RecordAssign is called after each serial consumption of an axis
	// reduction. err is nil if successful.
	RecordAssign(mode Mode, path Path, size int, duration time.Duration, err error)

	// RecordSMP is called after each parallel assignment that was split
	// into chunks.
	RecordSMP(chunks int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordReduce(Backend, int, int, time.Duration)      {}
func (NoopMetricsCollector) RecordAssign(Mode, Path, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSMP(int, time.Duration)                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReduceCount      atomic.Int64
	ReduceScalar     atomic.Int64
	ReduceBatched    atomic.Int64
	ReduceSum        atomic.Int64
	ReduceElements   atomic.Int64
	ReduceTotalNanos atomic.Int64
	AssignCount      atomic.Int64
	AssignErrors     atomic.Int64
	AssignEvaluated  atomic.Int64
	AssignTotalNanos atomic.Int64
	SMPCount         atomic.Int64
	SMPChunks        atomic.Int64
}

// RecordReduce implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReduce(backend Backend, rows, cols int, duration time.Duration) {
	b.ReduceCount.Add(1)
	b.ReduceElements.Add(int64(rows) * int64(cols))
	b.ReduceTotalNanos.Add(duration.Nanoseconds())
	switch backend {
	case BackendScalar:
		b.ReduceScalar.Add(1)
	case BackendBatched:
		b.ReduceBatched.Add(1)
	case BackendSum:
		b.ReduceSum.Add(1)
	}
}

// RecordAssign implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAssign(_ Mode, path Path, _ int, duration time.Duration, err error) {
	b.AssignCount.Add(1)
	b.AssignTotalNanos.Add(duration.Nanoseconds())
	if path.Evaluates() {
		b.AssignEvaluated.Add(1)
	}
	if err != nil {
		b.AssignErrors.Add(1)
	}
}

// RecordSMP implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSMP(chunks int, _ time.Duration) {
	b.SMPCount.Add(1)
	b.SMPChunks.Add(int64(chunks))
}

// Stats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) Stats() BasicMetricsStats {
	return BasicMetricsStats{
		ReduceCount:     b.ReduceCount.Load(),
		ReduceScalar:    b.ReduceScalar.Load(),
		ReduceBatched:   b.ReduceBatched.Load(),
		ReduceSum:       b.ReduceSum.Load(),
		ReduceElements:  b.ReduceElements.Load(),
		ReduceAvgNanos:  avg(b.ReduceTotalNanos.Load(), b.ReduceCount.Load()),
		AssignCount:     b.AssignCount.Load(),
		AssignErrors:    b.AssignErrors.Load(),
		AssignEvaluated: b.AssignEvaluated.Load(),
		AssignAvgNanos:  avg(b.AssignTotalNanos.Load(), b.AssignCount.Load()),
		SMPCount:        b.SMPCount.Load(),
		SMPChunks:       b.SMPChunks.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReduceCount     int64
	ReduceScalar    int64
	ReduceBatched   int64
	ReduceSum       int64
	ReduceElements  int64
	ReduceAvgNanos  int64
	AssignCount     int64
	AssignErrors    int64
	AssignEvaluated int64
	AssignAvgNanos  int64
	SMPCount        int64
	SMPChunks       int64
}
