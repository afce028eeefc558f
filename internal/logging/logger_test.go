package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARNING", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestConsole_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Console(&buf, zerolog.WarnLevel)
	log.Info().Msg("hidden")
	log.Warn().Str("path", "/products").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "/products")
}

func TestFile_AppendsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "backoffice.log")
	log, closer, err := File(path, zerolog.DebugLevel)
	require.NoError(t, err)
	log.Debug().Int("status", 200).Msg("api request")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "api request", entry["message"])
	assert.Equal(t, float64(200), entry["status"])
}
