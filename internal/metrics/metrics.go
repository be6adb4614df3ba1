// Package metrics collects per-run lint metrics and writes them in the
// Prometheus text format, for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leapstack-labs/lualint/pkg/report"
)

// Metrics holds the metrics of one lint run.
type Metrics struct {
	registry *prometheus.Registry

	FilesTotal      *prometheus.CounterVec
	ViolationsTotal *prometheus.CounterVec
	FaultsTotal     *prometheus.CounterVec
	RunDuration     prometheus.Gauge
	LastRun         prometheus.Gauge
}

// New creates and registers the run metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lualint_files_total",
				Help: "Number of files linted, by cache outcome",
			},
			[]string{"cache"},
		),
		ViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lualint_violations_total",
				Help: "Number of style violations reported",
			},
			[]string{"rule", "severity"},
		),
		FaultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lualint_faults_total",
				Help: "Number of tooling faults",
			},
			[]string{"component"},
		),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lualint_run_duration_seconds",
			Help: "Wall time of the last lint run in seconds",
		}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lualint_last_run_timestamp_seconds",
			Help: "Unix time the last lint run finished",
		}),
	}

	m.registry.MustRegister(
		m.FilesTotal,
		m.ViolationsTotal,
		m.FaultsTotal,
		m.RunDuration,
		m.LastRun,
	)
	return m
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// FileLinted counts one file, served from the cache or analyzed.
func (m *Metrics) FileLinted(cached bool) {
	outcome := "miss"
	if cached {
		outcome = "hit"
	}
	m.FilesTotal.WithLabelValues(outcome).Inc()
}

// ObserveReport counts the violations and faults of a report.
func (m *Metrics) ObserveReport(r *report.Report) {
	for _, e := range r.Entries() {
		m.ViolationsTotal.WithLabelValues(e.Rule, e.Severity.String()).Inc()
	}
	for _, f := range r.Faults() {
		m.FaultsTotal.WithLabelValues(f.Component).Inc()
	}
}

// Finish records the run duration and completion time.
func (m *Metrics) Finish(d time.Duration, now time.Time) {
	m.RunDuration.Set(d.Seconds())
	m.LastRun.Set(float64(now.Unix()))
}

// WriteTextfile writes the metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
