// Command mcp-stdio-test runs the stdio conformance suite against an HGNC MCP
// server container and prints a pass/fail report. Exit status is non-zero when
// any scenario fails.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/armish/hgnc-mcp-harness/pkg/logging"
	"github.com/armish/hgnc-mcp-harness/pkg/observability"
	"github.com/armish/hgnc-mcp-harness/pkg/report"
	"github.com/armish/hgnc-mcp-harness/pkg/scenario"
	"github.com/armish/hgnc-mcp-harness/pkg/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		image        string
		cacheVolume  string
		command      []string
		timeout      time.Duration
		verbose      bool
		metricsFile  string
		otlpEndpoint string
		otlpProtocol string
		otlpInsecure bool
	)

	flags := pflag.NewFlagSet("mcp-stdio-test", pflag.ContinueOnError)
	flags.StringVar(&image, "image", transport.DefaultImage, "container image to test")
	flags.StringVar(&cacheVolume, "cache-volume", transport.DefaultCacheVolume, "named volume mount for the server cache")
	flags.StringSliceVar(&command, "command", nil, "full server argv, replacing the docker invocation")
	flags.DurationVar(&timeout, "timeout", transport.DefaultTimeout, "per-scenario timeout")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging and raw responses")
	flags.StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics here after the run")
	flags.StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP collector endpoint; empty disables trace export")
	flags.StringVar(&otlpProtocol, "otlp-protocol", "grpc", "OTLP protocol: grpc or http")
	flags.BoolVar(&otlpInsecure, "otlp-insecure", false, "skip TLS when exporting traces")
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
	logger.Debug().Strs("command", command).Msg("server invocation")

	runID := uuid.NewString()

	tracer, err := observability.NewTracer(observability.TracingConfig{
		ServiceName:  "mcp-stdio-test",
		ExporterType: exporterType(otlpEndpoint, otlpProtocol),
		Endpoint:     otlpEndpoint,
		Insecure:     otlpInsecure,
		RunID:        runID,
	})
	if err != nil {
		logger.Error().Err(err).Msg("trace exporter setup failed")
		return 2
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(ctx); err != nil {
			logger.Warn().Err(err).Msg("trace shutdown")
		}
	}()

	metrics := observability.NewMetrics()

	runner := scenario.NewRunner(
		transport.Config{Command: command, Timeout: timeout, Logger: logger},
		scenario.WithLogger(logger),
		scenario.WithMetrics(metrics),
		scenario.WithTracer(tracer),
		scenario.WithRunID(runID),
	)

	reporter := report.New(os.Stdout, verbose)
	reporter.PrintHeader(strings.Join(command, " "), timeout)

	summary := runner.RunAll(context.Background(), scenario.Suite(scenario.DefaultToolCalls()))
	reporter.PrintSummary(summary)

	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			logger.Error().Err(errors.Wrap(err, "writing metrics textfile")).Msg("metrics export failed")
		}
	}

	return report.ExitCode(summary)
}

func exporterType(endpoint, protocol string) observability.ExporterType {
	if endpoint == "" {
		return observability.ExporterTypeNoop
	}
	if protocol == "http" {
		return observability.ExporterTypeOTLPHTTP
	}
	return observability.ExporterTypeOTLPGRPC
}
