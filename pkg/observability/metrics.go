package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Export outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the collectors espalier records.
type Metrics struct {
	exports  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	queries  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_exports_total",
				Help: "Total number of machine exports by format and outcome",
			},
			[]string{"format", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "espalier_export_duration_seconds",
				Help:    "Duration of machine exports",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_binding_queries_total",
				Help: "Total number of language binding queries",
			},
			[]string{"format", "query"},
		),
	}

	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveExport records one finished export.
func (m *Metrics) ObserveExport(format string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.exports.WithLabelValues(format, outcome).Inc()
	m.duration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// CountQuery records one binding query such as "transitions" or "target".
func (m *Metrics) CountQuery(format, query string) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(format, query).Inc()
}

// WriteTextfile dumps everything gathered by g in the node-exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

// Collectors returns the collectors in registration order.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.exports, m.duration, m.queries}
}
