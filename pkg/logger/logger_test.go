package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", "json", &buf)

	log.WithField("user_id", "u-1").Error("Failed to load bots", errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "Failed to load bots", entry["message"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "u-1", entry["user_id"])
	assert.Equal(t, "dexboard-api", entry["service"])
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", "json", &buf)

	log.Info("hidden")
	log.Debugf("hidden %d", 1)
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLogLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, "info", parseLogLevel("nonsense").String())
	assert.Equal(t, "debug", parseLogLevel("DEBUG").String())
}
