// Package harness drives conformance and schema checks against an HGNC MCP
// server spoken to over subprocess stdio.
//
// The harness consists of several sub-packages:
//
//   - pkg/protocol: JSON-RPC 2.0 framing and the MCP message types
//   - pkg/transport: subprocess sessions writing request batches and
//     recovering responses from noisy output
//   - pkg/scenario: the conformance scenarios and their runner
//   - pkg/schema: capability fetching and schema linting
//   - pkg/report: human-readable and JSON rendering of outcomes
//   - pkg/observability: Prometheus metrics and OpenTelemetry tracing
//
// # Running the suite
//
// To run the full conformance suite against a container image:
//
//	import (
//	    "context"
//	    harness "github.com/armish/hgnc-mcp-harness"
//	)
//
//	func main() {
//	    runner := harness.NewRunner(transport.Config{
//	        Command: harness.DockerCommand("hgnc-mcp:latest", ""),
//	    })
//	    summary := runner.RunAll(context.Background(),
//	        harness.Suite(harness.DefaultToolCalls()))
//	    if !summary.AllPassed() {
//	        // inspect summary.Failed()
//	    }
//	}
//
// # Linting schemas
//
// To fetch and lint a server's advertised capabilities:
//
//	caps := harness.FetchCapabilities(ctx, cfg)
//	findings := harness.ValidateCapabilities(caps)
//
// Blocking findings indicate shapes that make MCP clients disable the
// server; advisory findings are survivable but worth fixing.
package harness
