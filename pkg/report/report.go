// Package report renders harness outcomes to a stream and derives process
// exit status. It stays out of the decision path: everything it prints was
// decided by the scenario runner or the schema validator.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/armish/hgnc-mcp-harness/pkg/scenario"
	"github.com/armish/hgnc-mcp-harness/pkg/schema"
)

const banner = "============================================================"

// Reporter writes human-readable output to one stream.
type Reporter struct {
	out     io.Writer
	verbose bool
}

// New creates a reporter. Verbose mode additionally prints raw responses.
func New(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// PrintHeader announces a scenario run.
func (r *Reporter) PrintHeader(image string, timeout time.Duration) {
	fmt.Fprintln(r.out, banner)
	fmt.Fprintln(r.out, "  HGNC MCP Server - Stdio Conformance Suite")
	fmt.Fprintln(r.out, banner)
	fmt.Fprintf(r.out, "\nTesting image: %s\n", image)
	fmt.Fprintf(r.out, "Timeout: %s per test\n\n", timeout)
}

// PrintSummary renders every verdict in run order plus the aggregate totals
// and, when something failed, the failure list.
func (r *Reporter) PrintSummary(summary scenario.Summary) {
	for i, v := range summary.Verdicts {
		status := "FAIL"
		if v.Passed {
			status = "PASS"
		}
		fmt.Fprintf(r.out, "[%d/%d] %s\n", i+1, summary.Total, v.Name)
		fmt.Fprintf(r.out, "      %s - %s (%.2fs)\n", status, v.Message, v.Duration.Seconds())
		if r.verbose && v.Response != nil {
			if raw, err := json.Marshal(v.Response); err == nil {
				fmt.Fprintf(r.out, "      Response: %s\n", truncate(string(raw), 200))
			}
		}
		fmt.Fprintln(r.out)
	}

	var total time.Duration
	for _, v := range summary.Verdicts {
		total += v.Duration
	}

	fmt.Fprintln(r.out, banner)
	fmt.Fprintln(r.out, "  Test Results")
	fmt.Fprintln(r.out, banner)
	fmt.Fprintf(r.out, "\nTotal tests:  %d\n", summary.Total)
	fmt.Fprintf(r.out, "Passed:       %d\n", summary.Passed)
	fmt.Fprintf(r.out, "Failed:       %d\n", summary.Total-summary.Passed)
	fmt.Fprintf(r.out, "\nTotal time:   %.2fs\n", total.Seconds())

	if summary.AllPassed() {
		fmt.Fprintln(r.out, "\nAll tests passed. Stdio mode is working for MCP clients.")
		return
	}
	fmt.Fprintln(r.out, "\nSome tests failed:")
	for _, v := range summary.Failed() {
		fmt.Fprintf(r.out, "  - %s: %s\n", v.Name, v.Message)
	}
}

// PrintFindings renders the linter's findings grouped under per-list counts.
func (r *Reporter) PrintFindings(caps schema.Capabilities, findings []schema.Finding) {
	fmt.Fprintf(r.out, "Validated %d tools, %d prompts, %d resources\n\n",
		len(caps.Tools), len(caps.Prompts), len(caps.Resources))

	for _, f := range findings {
		marker := "WARN"
		if f.Severity == schema.SeverityBlocking {
			marker = "CRIT"
		}
		fmt.Fprintf(r.out, "  [%s] %s\n", marker, f.String())
	}
	if len(findings) > 0 {
		fmt.Fprintln(r.out)
	}

	blocking, advisory := schema.Count(findings)
	switch {
	case blocking > 0:
		fmt.Fprintf(r.out, "Found %d critical issue(s) and %d warning(s).\n", blocking, advisory)
		fmt.Fprintln(r.out, "Critical issues will cause MCP clients to disable this server.")
	case advisory > 0:
		fmt.Fprintf(r.out, "Found %d warning(s). These may cause issues with some MCP clients.\n", advisory)
	default:
		fmt.Fprintln(r.out, "All schemas are valid.")
	}
}

// lintDocument is the stable JSON shape of a lint run.
type lintDocument struct {
	Findings []schema.Finding `json:"findings"`
	Blocking int              `json:"blocking"`
	Advisory int              `json:"advisory"`
	OK       bool             `json:"ok"`
}

// PrintFindingsJSON renders the findings as one JSON document.
func (r *Reporter) PrintFindingsJSON(findings []schema.Finding) error {
	blocking, advisory := schema.Count(findings)
	doc := lintDocument{
		Findings: findings,
		Blocking: blocking,
		Advisory: advisory,
		OK:       blocking == 0,
	}
	if doc.Findings == nil {
		doc.Findings = []schema.Finding{}
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ExitCode derives the scenario runner's process status: non-zero iff at
// least one scenario failed.
func ExitCode(summary scenario.Summary) int {
	if summary.AllPassed() {
		return 0
	}
	return 1
}

// LintExitCode derives the linter's process status: non-zero iff a blocking
// finding exists. Warnings alone still exit clean.
func LintExitCode(findings []schema.Finding) int {
	if schema.HasBlocking(findings) {
		return 1
	}
	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
