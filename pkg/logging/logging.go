// Package logging builds the zerolog logger shared by the harness binaries.
// Diagnostics go to stderr so that stdout stays reserved for the report.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LevelEnvVar overrides the log level when set to a zerolog level name.
const LevelEnvVar = "HGNC_HARNESS_LOG_LEVEL"

// New returns a console logger on stderr. Verbose lowers the level to debug;
// the environment variable wins over both defaults.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if env := os.Getenv(LevelEnvVar); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
