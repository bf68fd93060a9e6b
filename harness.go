package harness

import (
	"github.com/armish/hgnc-mcp-harness/pkg/scenario"
	"github.com/armish/hgnc-mcp-harness/pkg/schema"
	"github.com/armish/hgnc-mcp-harness/pkg/transport"
)

// Version represents the current version of the harness.
const Version = "1.0.0"

// These exports provide direct access to the core harness components.
var (
	// NewSession creates a subprocess session for one request batch
	NewSession = transport.NewSession

	// DockerCommand builds the standard docker invocation for a server image
	DockerCommand = transport.DockerCommand

	// NewRunner creates a conformance scenario runner
	NewRunner = scenario.NewRunner

	// Suite assembles the full scenario list in execution order
	Suite = scenario.Suite

	// DefaultToolCalls lists the tool invocations the suite exercises
	DefaultToolCalls = scenario.DefaultToolCalls

	// FetchCapabilities retrieves a server's advertised tools, prompts and resources
	FetchCapabilities = schema.Fetch

	// ValidateCapabilities lints the advertised lists for malformed schemas
	ValidateCapabilities = schema.Validate
)
