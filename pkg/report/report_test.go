package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armish/hgnc-mcp-harness/pkg/scenario"
	"github.com/armish/hgnc-mcp-harness/pkg/schema"
)

func sampleSummary(passed bool) scenario.Summary {
	verdicts := []scenario.Verdict{
		{Name: "MCP Initialize", Passed: true, Message: "protocol version: 2024-11-05", Duration: 1200 * time.Millisecond},
		{Name: "List Tools", Passed: passed, Message: "found 5 tools", Duration: 800 * time.Millisecond},
	}
	total := 2
	count := 0
	for _, v := range verdicts {
		if v.Passed {
			count++
		}
	}
	if !passed {
		verdicts[1].Message = "timed out waiting for response"
	}
	return scenario.Summary{Verdicts: verdicts, Passed: count, Total: total}
}

func TestPrintSummaryAllPassed(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).PrintSummary(sampleSummary(true))

	out := buf.String()
	assert.Contains(t, out, "[1/2] MCP Initialize")
	assert.Contains(t, out, "PASS - protocol version: 2024-11-05")
	assert.Contains(t, out, "[2/2] List Tools")
	assert.Contains(t, out, "Passed:       2")
	assert.Contains(t, out, "Failed:       0")
	assert.Contains(t, out, "All tests passed")
	assert.NotContains(t, out, "Some tests failed")
}

func TestPrintSummaryWithFailure(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).PrintSummary(sampleSummary(false))

	out := buf.String()
	assert.Contains(t, out, "FAIL - timed out waiting for response")
	assert.Contains(t, out, "Some tests failed:")
	assert.Contains(t, out, "  - List Tools: timed out waiting for response")
	assert.NotContains(t, out, "All tests passed")
}

func TestPrintHeader(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).PrintHeader("hgnc-mcp:latest", 30*time.Second)

	out := buf.String()
	assert.Contains(t, out, "Stdio Conformance Suite")
	assert.Contains(t, out, "Testing image: hgnc-mcp:latest")
	assert.Contains(t, out, "Timeout: 30s per test")
}

func TestPrintFindings(t *testing.T) {
	caps := schema.Capabilities{
		Tools: []map[string]interface{}{{"name": "a"}, {"name": "b"}},
	}
	findings := []schema.Finding{
		{Severity: schema.SeverityBlocking, Subject: "tool.a", Property: "symbols", Message: "'default' looks like an R c() serialization artifact"},
		{Severity: schema.SeverityAdvisory, Subject: "tool.b", Property: "items", Message: "'default' is an empty array, should be null or omitted"},
	}

	var buf bytes.Buffer
	New(&buf, false).PrintFindings(caps, findings)

	out := buf.String()
	assert.Contains(t, out, "Validated 2 tools, 0 prompts, 0 resources")
	assert.Contains(t, out, "[CRIT] tool.a.symbols:")
	assert.Contains(t, out, "[WARN] tool.b.items:")
	assert.Contains(t, out, "Found 1 critical issue(s) and 1 warning(s).")
	assert.Contains(t, out, "disable this server")
}

func TestPrintFindingsClean(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).PrintFindings(schema.Capabilities{}, nil)
	assert.Contains(t, buf.String(), "All schemas are valid.")
}

func TestPrintFindingsJSON(t *testing.T) {
	findings := []schema.Finding{
		{Severity: schema.SeverityAdvisory, Subject: "tool.x", Message: "m"},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).PrintFindingsJSON(findings))

	var doc struct {
		Findings []map[string]interface{} `json:"findings"`
		Blocking int                      `json:"blocking"`
		Advisory int                      `json:"advisory"`
		OK       bool                     `json:"ok"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Findings, 1)
	assert.Equal(t, "advisory", doc.Findings[0]["severity"])
	assert.Equal(t, 0, doc.Blocking)
	assert.Equal(t, 1, doc.Advisory)
	assert.True(t, doc.OK)
}

func TestPrintFindingsJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, false).PrintFindingsJSON(nil))
	// Empty findings render as [], not null.
	assert.Contains(t, buf.String(), `"findings": []`)
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, ExitCode(sampleSummary(true)))
	assert.Equal(t, 1, ExitCode(sampleSummary(false)))

	blocking := []schema.Finding{{Severity: schema.SeverityBlocking}}
	advisory := []schema.Finding{{Severity: schema.SeverityAdvisory}}
	assert.Equal(t, 1, LintExitCode(blocking))
	assert.Equal(t, 0, LintExitCode(advisory))
	assert.Equal(t, 0, LintExitCode(nil))
}
