package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_LevelParsing(t *testing.T) {
	var buf bytes.Buffer

	log := New(&buf, "debug")
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log = New(&buf, "warn")
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	// Garbage falls back to info.
	log = New(&buf, "extra-loud")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNew_Writes(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.Debug().Msg("hidden")
	log.Info().Str("phase", "HANGAR").Msg("phase change")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "phase change")
	assert.Contains(t, out, "HANGAR")
}

func TestDispatcherLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	dl := NewDispatcherLogger(New(&buf, "debug"))

	dl.Debug("handling event", "command", "attack", "args", 2)
	dl.Error("event failed", "command", "attack")

	out := buf.String()
	assert.Contains(t, out, "handling event")
	assert.Contains(t, out, "attack")
	assert.Contains(t, out, "event failed")
}

func TestToFields_OddPairs(t *testing.T) {
	fields := toFields([]any{"a", 1, "dangling"})
	assert.Equal(t, map[string]any{"a": 1}, fields)
}
