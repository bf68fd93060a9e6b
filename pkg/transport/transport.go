package transport

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultImage is the container image the harness exercises when none is
	// given on the command line.
	DefaultImage = "hgnc-mcp:latest"

	// DefaultCacheVolume is the named cache volume mounted into every
	// session's container. The harness treats its contents as opaque.
	DefaultCacheVolume = "hgnc-cache:/home/hgnc/.cache/hgnc"

	// DefaultTimeout bounds one full write-input/read-output exchange.
	DefaultTimeout = 30 * time.Second
)

// Config describes how a session launches and bounds its subprocess. The
// invocation is supplied by the caller; Session never assembles one itself.
type Config struct {
	// Command is the full argv of the server process, e.g. the output of
	// DockerCommand.
	Command []string

	// Timeout bounds the whole exchange. Zero means DefaultTimeout.
	Timeout time.Duration

	Logger zerolog.Logger
}

// DockerCommand builds the fixed collaborator invocation: run the image with
// stdio transport selected and the cache volume mounted. Empty arguments fall
// back to the defaults above.
func DockerCommand(image, cacheVolume string) []string {
	if image == "" {
		image = DefaultImage
	}
	if cacheVolume == "" {
		cacheVolume = DefaultCacheVolume
	}
	return []string{"docker", "run", "--rm", "-i", "-v", cacheVolume, image, "--stdio"}
}
