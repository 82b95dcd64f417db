package itemservice

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmcdole/purse/internal/domain"
)

// Metrics holds the collectors shared by all instrumented sources.
type Metrics struct {
	loads    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the source collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "purse",
				Subsystem: "source",
				Name:      "loads_total",
				Help:      "Total number of item loads per source and outcome.",
			},
			[]string{"source", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "purse",
				Subsystem: "source",
				Name:      "load_duration_seconds",
				Help:      "Duration of item loads per source.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"source"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.loads, m.duration)
	}
	return m
}

// Loads exposes the per-source load counter
func (m *Metrics) Loads() *prometheus.CounterVec {
	return m.loads
}

// Instrumented records every call to the wrapped service without changing
// its outcome.
type Instrumented struct {
	next    domain.ItemService
	source  string
	metrics *Metrics
}

// NewInstrumented wraps next. A nil metrics returns next unchanged.
func NewInstrumented(next domain.ItemService, source string, metrics *Metrics) domain.ItemService {
	if metrics == nil {
		return next
	}
	return &Instrumented{next: next, source: source, metrics: metrics}
}

func (s *Instrumented) LoadItems(ctx context.Context) ([]domain.Item, error) {
	start := time.Now()
	items, err := s.next.LoadItems(ctx)
	s.metrics.duration.WithLabelValues(s.source).Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.loads.WithLabelValues(s.source, outcome).Inc()
	return items, err
}
