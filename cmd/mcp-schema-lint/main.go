// Command mcp-schema-lint asks an HGNC MCP server container for its advertised
// tools, prompts and resources, then checks each entry against the shapes MCP
// clients are known to reject. Exit status is non-zero only for critical
// findings; warnings alone exit clean.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/armish/hgnc-mcp-harness/pkg/logging"
	"github.com/armish/hgnc-mcp-harness/pkg/observability"
	"github.com/armish/hgnc-mcp-harness/pkg/report"
	"github.com/armish/hgnc-mcp-harness/pkg/schema"
	"github.com/armish/hgnc-mcp-harness/pkg/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		image       string
		cacheVolume string
		command     []string
		timeout     time.Duration
		verbose     bool
		jsonOutput  bool
		metricsFile string
	)

	flags := pflag.NewFlagSet("mcp-schema-lint", pflag.ContinueOnError)
	flags.StringVar(&image, "image", transport.DefaultImage, "container image to lint")
	flags.StringVar(&cacheVolume, "cache-volume", transport.DefaultCacheVolume, "named volume mount for the server cache")
	flags.StringSliceVar(&command, "command", nil, "full server argv, replacing the docker invocation")
	flags.DurationVar(&timeout, "timeout", transport.DefaultTimeout, "timeout for the capability fetch")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&jsonOutput, "json", false, "emit findings as JSON")
	flags.StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics here after the run")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := logging.New(verbose)

	if len(command) == 0 {
		command = transport.DockerCommand(image, cacheVolume)
	}

	caps := schema.Fetch(context.Background(), transport.Config{
		Command: command,
		Timeout: timeout,
		Logger:  logger,
	})
	findings := schema.Validate(caps)

	metrics := observability.NewMetrics()
	for _, f := range findings {
		metrics.RecordFinding(string(f.Severity))
	}
	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			logger.Error().Err(errors.Wrap(err, "writing metrics textfile")).Msg("metrics export failed")
		}
	}

	reporter := report.New(os.Stdout, verbose)
	if jsonOutput {
		if err := reporter.PrintFindingsJSON(findings); err != nil {
			logger.Error().Err(err).Msg("encoding findings")
			return 2
		}
	} else {
		reporter.PrintFindings(caps, findings)
	}

	return report.LintExitCode(findings)
}
