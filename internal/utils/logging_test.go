package utils

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		exp       zerolog.Level
	}{
		{-1, zerolog.Disabled},
		{0, zerolog.Disabled},
		{1, zerolog.ErrorLevel},
		{2, zerolog.WarnLevel},
		{3, zerolog.InfoLevel},
		{4, zerolog.DebugLevel},
		{9, zerolog.DebugLevel},
	}
	for i, test := range tests {
		if got := verbosityToLevel(test.verbosity); got != test.exp {
			t.Errorf("Test %v: unexpected level %v / %v", i, got, test.exp)
		}
	}
}

func TestLoggerContextAndVerbosity(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogVerbosity(3)
	SetLogContext("test-session")

	Logger().Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	Logger().Info().Str("module", "utils").Msg("visible")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "test-session", entry["session"])
	assert.Equal(t, "utils", entry["module"])
}

func TestAddLogFile(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetLogVerbosity(3)

	path := filepath.Join(t.TempDir(), "logs", "explorer.log")
	require.NoError(t, AddLogFile(path, 1))
	Logger().Info().Msg("to file")
	assert.FileExists(t, path)
	assert.Contains(t, buf.String(), "to file")
}

func TestPromRegistrySingleton(t *testing.T) {
	assert.Same(t, PromRegistry(), PromRegistry())
}
