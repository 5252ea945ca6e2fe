package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the report module.
type Metrics struct {
	ReportsSubmitted prometheus.Counter
	StatusChanged    prometheus.Counter
	CreateDuration   prometheus.Histogram
	StatsDuration    prometheus.Histogram
}

// New creates a new Metrics instance with all report module metrics registered.
func New() *Metrics {
	return &Metrics{
		ReportsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "appguard_reports_submitted_total",
			Help: "Total number of reports submitted by citizens",
		}),
		StatusChanged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "appguard_report_status_changes_total",
			Help: "Total number of report status transitions applied",
		}),
		CreateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "appguard_report_create_duration_seconds",
			Help:    "Duration of report creation (validation plus store insert)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		StatsDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "appguard_report_stats_duration_seconds",
			Help:    "Duration of stats snapshot computation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementReportsSubmitted records a successful report creation.
func (m *Metrics) IncrementReportsSubmitted() {
	m.ReportsSubmitted.Inc()
}

// IncrementStatusChanged records an applied status transition.
func (m *Metrics) IncrementStatusChanged() {
	m.StatusChanged.Inc()
}

// ObserveCreate records the duration of a CreateReport operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCreate(start time.Time) {
	m.CreateDuration.Observe(time.Since(start).Seconds())
}

// ObserveStats records the duration of a Stats operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveStats(start time.Time) {
	m.StatsDuration.Observe(time.Since(start).Seconds())
}
