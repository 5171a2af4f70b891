package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Metrics struct {
	asks     *prometheus.CounterVec
	duration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		asks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rag",
			Name:      "ask_requests_total",
			Help:      "Questions answered, by outcome.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rag",
			Name:      "ask_duration_seconds",
			Help:      "End-to-end latency of retrieval plus generation.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}),
	}
	reg.MustRegister(m.asks, m.duration)
	return m
}

func (m *Metrics) ObserveAsk(start time.Time, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.asks.WithLabelValues(status).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}
