package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
)

type metrics struct {
	instructions *prometheus.CounterVec
	duration     prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_instructions_total",
			Help: "Processed payment instructions by outcome",
		}, []string{"status", "status_code"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "payment_instruction_duration_seconds",
			Help:    "Time spent processing one payment instruction",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
	}
	reg.MustRegister(m.instructions, m.duration)
	return m
}

func (m *metrics) observe(result payment.Result, seconds float64) {
	m.instructions.WithLabelValues(string(result.Status), string(result.StatusCode)).Inc()
	m.duration.Observe(seconds)
}
