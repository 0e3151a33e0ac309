package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", &buf)
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept", zap.String("kind", "Expnese"))
	require.NoError(t, log.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "Expnese", line["kind"])
	assert.Contains(t, line, "timestamp")
}

func TestNew_DebugConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("debug", &buf)
	require.NoError(t, err)

	log.Debug("entry appended", zap.Int("seq", 1))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "entry appended")
	assert.Contains(t, out, `"seq": 1`)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("loud", &bytes.Buffer{})
	assert.Error(t, err)
}
