// Package metrics provides Prometheus metrics for the shotzone report run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus collectors for one report process.
type Manager struct {
	namespace       string
	subsystem       string
	durationBuckets []float64
	registry        *prometheus.Registry

	// Input
	shotsLoaded  prometheus.Counter
	rowsRejected prometheus.Counter

	// Classification
	shotsClassified *prometheus.CounterVec

	// Aggregation results
	zoneAttempts *prometheus.GaugeVec
	zoneEFG      *prometheus.GaugeVec
	teamCount    prometheus.Gauge

	// Run
	reportDuration prometheus.Histogram
	reportErrors   *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "shotzone",
		subsystem:       "report",
		durationBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		registry:        prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.shotsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shots_loaded_total",
		Help:      "Total number of shot records read from the input source",
	})

	m.rowsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_rejected_total",
		Help:      "Total number of input rows that failed parsing or validation",
	})

	m.shotsClassified = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shots_classified_total",
		Help:      "Total number of shots classified, by court region",
	}, []string{"region"})

	m.zoneAttempts = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "zone_attempts",
		Help:      "Field goals attempted per team and region in the last run",
	}, []string{"team", "region"})

	m.zoneEFG = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "zone_efg",
		Help:      "Effective field-goal percentage per team and region (NaN when no attempts)",
	}, []string{"team", "region"})

	m.teamCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams",
		Help:      "Number of distinct teams in the last run",
	})

	m.reportDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duration_milliseconds",
		Help:      "Wall time of a full report run in milliseconds",
		Buckets:   m.durationBuckets,
	})

	m.reportErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total number of failed report runs, by stage",
	}, []string{"stage"})
}

// Registry returns the registry the manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// AddShotsLoaded adds n to the loaded shots counter.
func (m *Manager) AddShotsLoaded(n int) { m.shotsLoaded.Add(float64(n)) }

// RecordRowRejected increments the rejected rows counter.
func (m *Manager) RecordRowRejected() { m.rowsRejected.Inc() }

// RecordShotClassified increments the classified counter for region.
func (m *Manager) RecordShotClassified(region string) {
	m.shotsClassified.WithLabelValues(region).Inc()
}

// SetZoneAttempts records the attempt count for a team and region.
func (m *Manager) SetZoneAttempts(team, region string, attempts int) {
	m.zoneAttempts.WithLabelValues(team, region).Set(float64(attempts))
}

// SetZoneEFG records the eFG value for a team and region.
func (m *Manager) SetZoneEFG(team, region string, value float64) {
	m.zoneEFG.WithLabelValues(team, region).Set(value)
}

// SetTeamCount records the number of teams seen.
func (m *Manager) SetTeamCount(n int) { m.teamCount.Set(float64(n)) }

// RecordReportDuration records run wall time in milliseconds.
func (m *Manager) RecordReportDuration(ms float64) { m.reportDuration.Observe(ms) }

// RecordReportError increments the failed run counter for stage.
func (m *Manager) RecordReportError(stage string) {
	m.reportErrors.WithLabelValues(stage).Inc()
}

// WriteTextfile writes every collector on the registry to path in the
// Prometheus text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteTextfile, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager { return globalManager }

// AddShotsLoaded adds n to the global loaded shots counter.
func AddShotsLoaded(n int) { globalManager.AddShotsLoaded(n) }

// RecordRowRejected increments the global rejected rows counter.
func RecordRowRejected() { globalManager.RecordRowRejected() }

// RecordShotClassified increments the global classified counter for region.
func RecordShotClassified(region string) { globalManager.RecordShotClassified(region) }

// SetZoneAttempts records the attempt count on the global manager.
func SetZoneAttempts(team, region string, attempts int) {
	globalManager.SetZoneAttempts(team, region, attempts)
}

// SetZoneEFG records the eFG value on the global manager.
func SetZoneEFG(team, region string, value float64) {
	globalManager.SetZoneEFG(team, region, value)
}

// SetTeamCount records the team count on the global manager.
func SetTeamCount(n int) { globalManager.SetTeamCount(n) }

// RecordReportDuration records run wall time on the global manager.
func RecordReportDuration(ms float64) { globalManager.RecordReportDuration(ms) }

// RecordReportError increments the global failed run counter.
func RecordReportError(stage string) { globalManager.RecordReportError(stage) }

// WriteTextfile dumps the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }
