// Package metrics instruments fill runs with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors of a fill run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// Labels that matched no registered district, by country
	UnresolvedLabels *prometheus.CounterVec

	// Rows given a value by interpolation
	FilledRows *prometheus.CounterVec

	// Rows still undefined after the last round
	UnfilledRows *prometheus.GaugeVec

	// Wall time of a single country fill, load to save
	FillDuration *prometheus.HistogramVec
}

// New registers the collectors with reg; a nil reg means the default
// Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		UnresolvedLabels: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mbench_unresolved_labels_total",
			Help: "Dataset labels that matched no district in the country registry",
		}, []string{"country"}),

		FilledRows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mbench_filled_rows_total",
			Help: "Missing rows given a value by neighbour interpolation",
		}, []string{"country", "parameter"}),

		UnfilledRows: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mbench_unfilled_rows",
			Help: "Rows still undefined after the last interpolation round",
		}, []string{"country", "parameter"}),

		FillDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mbench_fill_duration_seconds",
			Help:    "Duration of one country run from load to save",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"country"}),
	}
}

// AddUnresolved counts n labels of country that resolved to no district.
func (m *Metrics) AddUnresolved(country string, n int) {
	if m != nil && n > 0 {
		m.UnresolvedLabels.WithLabelValues(country).Add(float64(n))
	}
}

// ObserveFill records the outcome of filling one parameter column.
func (m *Metrics) ObserveFill(country, parameter string, filled, unfilled int) {
	if m != nil {
		m.FilledRows.WithLabelValues(country, parameter).Add(float64(filled))
		m.UnfilledRows.WithLabelValues(country, parameter).Set(float64(unfilled))
	}
}

// ObserveDuration records how long a country run took.
func (m *Metrics) ObserveDuration(country string, d time.Duration) {
	if m != nil {
		m.FillDuration.WithLabelValues(country).Observe(d.Seconds())
	}
}
