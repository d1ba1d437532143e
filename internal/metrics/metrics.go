// Package metrics instruments a message store with Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "streamstore"

// Write results
const (
	ResultOK       = "ok"
	ResultConflict = "conflict"
)

// Read paths
const (
	PathStream   = "stream"
	PathCategory = "category"
	PathAll      = "all"
)

// StoreMetrics holds the collectors for one store instance. A nil
// *StoreMetrics is valid and records nothing.
type StoreMetrics struct {
	Writes           *prometheus.CounterVec
	MessagesAppended prometheus.Counter
	Reads            *prometheus.CounterVec
	LogLength        prometheus.Gauge
	BatchSize        prometheus.Histogram
}

// NewStoreMetrics creates the store collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "writes_total",
			Help:      "Total number of write batches by result",
		}, []string{"result"}),

		MessagesAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_appended_total",
			Help:      "Total number of messages appended to the log",
		}),

		Reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reads_total",
			Help:      "Total number of reads by path",
		}, []string{"path"}),

		LogLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "log_length",
			Help:      "Current number of messages in the log",
		}),

		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "write_batch_size",
			Help:      "Histogram of committed write batch sizes",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.Writes, m.MessagesAppended, m.Reads, m.LogLength, m.BatchSize)
	}
	return m
}

// ObserveCommit records a committed batch of n messages leaving the log at
// logLength entries.
func (m *StoreMetrics) ObserveCommit(n int, logLength uint64) {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(ResultOK).Inc()
	m.MessagesAppended.Add(float64(n))
	m.BatchSize.Observe(float64(n))
	m.LogLength.Set(float64(logLength))
}

// ObserveConflict records a batch rejected by the version check.
func (m *StoreMetrics) ObserveConflict() {
	if m == nil {
		return
	}
	m.Writes.WithLabelValues(ResultConflict).Inc()
}

// ObserveRead records a read on the given path.
func (m *StoreMetrics) ObserveRead(path string) {
	if m == nil {
		return
	}
	m.Reads.WithLabelValues(path).Inc()
}
