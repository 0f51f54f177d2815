package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/antimoji/emojify/internal/types"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	// Requests counts handled requests by route pattern and status code.
	Requests *prometheus.CounterVec
	// Replacements counts emoji replaced, by kind (unicode, custom).
	Replacements *prometheus.CounterVec
	// RenderDuration observes how long one emojify call takes.
	RenderDuration prometheus.Histogram
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emojify_http_requests_total",
				Help: "Total number of HTTP requests handled.",
			},
			[]string{"route", "code"},
		),
		Replacements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emojify_replacements_total",
				Help: "Total number of emoji replaced with images.",
			},
			[]string{"kind"},
		),
		RenderDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "emojify_render_duration_seconds",
				Help:    "Time spent rendering one piece of content.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}
}

func (m *Metrics) observeStats(stats types.Stats) {
	m.Replacements.WithLabelValues(string(types.CategoryUnicode)).Add(float64(stats.Unicode))
	m.Replacements.WithLabelValues(string(types.CategoryCustom)).Add(float64(stats.Custom))
}
