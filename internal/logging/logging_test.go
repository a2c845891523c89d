package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetup_WritesToGivenWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	Setup(1, &buf)

	log.Info().Msg("hello from setup")
	log.Debug().Msg("hidden at info level")

	out := buf.String()
	assert.Contains(t, out, "hello from setup")
	assert.NotContains(t, out, "hidden at info level")
	// ConsoleWriter on a buffer must not emit colour escapes.
	assert.NotContains(t, out, "\x1b[")
}

func TestLogCommand(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	LogCommand(logger, "poetry", []string{"run", "pre-commit", "install"}, "/src/anvil")

	out := buf.String()
	assert.Contains(t, out, "Executing command")
	assert.Contains(t, out, `"command":"poetry"`)
	assert.Contains(t, out, `"pre-commit"`)
	assert.Contains(t, out, `"dir":"/src/anvil"`)
}

func TestGetLogger_AddsComponent(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	orig := log.Logger
	t.Cleanup(func() { log.Logger = orig })
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("runner")
	logger.Info().Msg("x")

	assert.Contains(t, buf.String(), `"component":"runner"`)
}

func TestLogOperationStart(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	done := LogOperationStart(logger, "bootstrap")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, `"duration"`)
}
