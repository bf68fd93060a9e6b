package observability

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordScenario("x", true, time.Second)
	m.RecordTimeout()
	m.RecordFinding("blocking")
	assert.NoError(t, m.WriteTextfile("/nonexistent/dir/file.prom"))
}

func TestMetricsTextfile(t *testing.T) {
	m := NewMetrics()
	m.RecordScenario("MCP Initialize", true, 1200*time.Millisecond)
	m.RecordScenario("List Tools", false, 300*time.Millisecond)
	m.RecordTimeout()
	m.RecordFinding("advisory")

	path := filepath.Join(t.TempDir(), "harness.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `harness_scenarios_total{scenario="MCP Initialize",status="pass"} 1`)
	assert.Contains(t, out, `harness_scenarios_total{scenario="List Tools",status="fail"} 1`)
	assert.Contains(t, out, "harness_transport_timeouts_total 1")
	assert.Contains(t, out, `harness_findings_total{severity="advisory"} 1`)
	assert.Contains(t, out, "harness_scenario_duration_seconds")
}

func TestTracerNoopWithoutEndpoint(t *testing.T) {
	tr, err := NewTracer(TracingConfig{RunID: "test-run"})
	require.NoError(t, err)

	ctx, span := tr.StartScenario(context.Background(), "MCP Initialize")
	assert.NotNil(t, ctx)
	span.End()

	require.NoError(t, tr.Shutdown(context.Background()))
}

func TestTracerNilSafe(t *testing.T) {
	var tr *Tracer
	_, span := tr.StartScenario(context.Background(), "List Tools")
	tr.RecordFailure(span, "missing response")
	span.End()
	assert.NoError(t, tr.Shutdown(context.Background()))
}

func TestTracerUnsupportedExporter(t *testing.T) {
	_, err := NewTracer(TracingConfig{ExporterType: "jaeger", Endpoint: "localhost:4317"})
	assert.Error(t, err)
}
