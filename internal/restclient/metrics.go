package restclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records request counts and latencies per operation.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the client collectors and registers them on reg. A nil
// registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "projeto",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Requests sent to the projeto API by operation, method and outcome.",
			},
			[]string{"operation", "method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "projeto",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Latency of requests sent to the projeto API.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "method"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(operation, method string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.requests.WithLabelValues(operation, method, outcome).Inc()
	m.duration.WithLabelValues(operation, method).Observe(time.Since(started).Seconds())
}
