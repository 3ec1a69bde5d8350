// Package prommetrics exports lazymat dispatch metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c, err := prommetrics.New(reg, "lazymat")
//	if err != nil { ... }
//	lazymat.Configure(lazymat.WithMetricsCollector(c))
package prommetrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/lazymat"
)

// Collector implements lazymat.MetricsCollector on Prometheus metrics.
type Collector struct {
	reduceLatency  *prometheus.HistogramVec
	reduceElements *prometheus.CounterVec
	assignLatency  *prometheus.HistogramVec
	assignErrors   *prometheus.CounterVec
	smpLatency     prometheus.Histogram
	smpChunks      prometheus.Histogram
}

var _ lazymat.MetricsCollector = (*Collector)(nil)

// New creates a collector and registers its metrics with reg under
// namespace.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		reduceLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reduce_duration_seconds",
			Help:      "Latency of full reductions",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"backend"}),
		reduceElements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reduce_elements_total",
			Help:      "Elements folded by full reductions",
		}, []string{"backend"}),
		assignLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assign_duration_seconds",
			Help:      "Latency of reduction assignments",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"mode", "path"}),
		assignErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assign_errors_total",
			Help:      "Failed reduction assignments",
		}, []string{"mode"}),
		smpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "smp_duration_seconds",
			Help:      "Latency of parallel assignments",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		smpChunks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "smp_chunks",
			Help:      "Ranges per parallel assignment",
			Buckets:   prometheus.LinearBuckets(1, 1, 16),
		}),
	}

	var errs []error
	for _, m := range []prometheus.Collector{
		c.reduceLatency, c.reduceElements, c.assignLatency, c.assignErrors, c.smpLatency, c.smpChunks,
	} {
		errs = append(errs, reg.Register(m))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is like New but panics if registration fails.
func MustNew(reg prometheus.Registerer, namespace string) *Collector {
	c, err := New(reg, namespace)
	if err != nil {
		panic(err)
	}
	return c
}

// RecordReduce implements lazymat.MetricsCollector.
func (c *Collector) RecordReduce(backend lazymat.Backend, rows, cols int, duration time.Duration) {
	c.reduceLatency.WithLabelValues(backend.String()).Observe(duration.Seconds())
	c.reduceElements.WithLabelValues(backend.String()).Add(float64(rows * cols))
}

// RecordAssign implements lazymat.MetricsCollector.
func (c *Collector) RecordAssign(mode lazymat.Mode, path lazymat.Path, _ int, duration time.Duration, err error) {
	c.assignLatency.WithLabelValues(mode.String(), path.String()).Observe(duration.Seconds())
	if err != nil {
		c.assignErrors.WithLabelValues(mode.String()).Inc()
	}
}

// RecordSMP implements lazymat.MetricsCollector.
func (c *Collector) RecordSMP(chunks int, duration time.Duration) {
	c.smpLatency.Observe(duration.Seconds())
	c.smpChunks.Observe(float64(chunks))
}
