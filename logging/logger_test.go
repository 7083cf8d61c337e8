package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Logger = (*SlogAdapter)(nil)
var _ Logger = NoOpLogger{}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestSetupWithWriters_FanOut(t *testing.T) {
	var stderr, file bytes.Buffer
	logger := SetupWithWriters(&stderr, &file, slog.LevelInfo)

	logger.Info("task completed", "brand", "Titleist", "added", 3)
	logger.Debug("suppressed", "x", 1)

	// text to stderr, JSON to the file writer
	assert.Contains(t, stderr.String(), "task completed")
	assert.Contains(t, stderr.String(), "brand=Titleist")
	assert.NotContains(t, stderr.String(), "suppressed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(file.String())), &entry))
	assert.Equal(t, "task completed", entry["msg"])
	assert.Equal(t, "Titleist", entry["brand"])
	assert.Equal(t, float64(3), entry["added"])
}

func TestNoOpLogger(t *testing.T) {
	// must be safe with arbitrary arguments
	var l NoOpLogger
	l.Debug("a")
	l.Info("b", "k", "v")
	l.Warn("c", "odd")
	l.Error("d", "k", 1, "k2", nil)
}
