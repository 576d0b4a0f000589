package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("CreateBooking: slot id=%d", 1)
	assert.Empty(t, buf.String())

	log.Warn("CreateBooking: slot id=%d not available", 2)
	assert.Contains(t, buf.String(), "slot id=2 not available")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestLogger_UnknownLevel(t *testing.T) {
	_, err := NewWithWriter(&bytes.Buffer{}, "verbose")
	require.Error(t, err)
}

func TestLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info("hello %s", "file")
	log.Close()

	assert.FileExists(t, path)
}
