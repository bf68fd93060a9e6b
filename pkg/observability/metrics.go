// Package observability provides metrics and tracing for harness runs.
package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Metrics collects per-run counters and timings on a private registry. A
// harness run is a one-shot batch job, so instead of serving /metrics the
// collected families can be written in text exposition format for the
// node-exporter textfile collector. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	scenarioDuration  *prometheus.HistogramVec
	scenariosTotal    *prometheus.CounterVec
	transportTimeouts prometheus.Counter
	findingsTotal     *prometheus.CounterVec
}

// NewMetrics creates the harness collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scenarioDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "harness",
			Name:      "scenario_duration_seconds",
			Help:      "Wall-clock duration of one conformance scenario",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"scenario"}),
		scenariosTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harness",
			Name:      "scenarios_total",
			Help:      "Scenario outcomes by status",
		}, []string{"scenario", "status"}),
		transportTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "harness",
			Name:      "transport_timeouts_total",
			Help:      "Sessions killed at the exchange timeout",
		}),
		findingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harness",
			Name:      "findings_total",
			Help:      "Schema findings by severity",
		}, []string{"severity"}),
	}

	m.registry.MustRegister(
		m.scenarioDuration,
		m.scenariosTotal,
		m.transportTimeouts,
		m.findingsTotal,
	)
	return m
}

// RecordScenario records one scenario outcome and its duration.
func (m *Metrics) RecordScenario(name string, passed bool, d time.Duration) {
	if m == nil {
		return
	}
	status := "fail"
	if passed {
		status = "pass"
	}
	m.scenarioDuration.WithLabelValues(name).Observe(d.Seconds())
	m.scenariosTotal.WithLabelValues(name, status).Inc()
}

// RecordTimeout records a session that hit the exchange timeout.
func (m *Metrics) RecordTimeout() {
	if m == nil {
		return
	}
	m.transportTimeouts.Inc()
}

// RecordFinding records one schema finding by severity.
func (m *Metrics) RecordFinding(severity string) {
	if m == nil {
		return
	}
	m.findingsTotal.WithLabelValues(severity).Inc()
}

// WriteTextfile gathers the registry and writes it atomically in Prometheus
// text exposition format, the contract of the textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}

	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(tmp, mf); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
