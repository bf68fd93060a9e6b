package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	t.Setenv(LevelEnvVar, "")
	assert.Equal(t, zerolog.InfoLevel, New(false).GetLevel())
	assert.Equal(t, zerolog.DebugLevel, New(true).GetLevel())
}

func TestNewEnvOverride(t *testing.T) {
	t.Setenv(LevelEnvVar, "warn")
	assert.Equal(t, zerolog.WarnLevel, New(true).GetLevel())

	t.Setenv(LevelEnvVar, "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, New(false).GetLevel())
}
