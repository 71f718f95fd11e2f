package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestInitializeWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "warn", "json")
	t.Cleanup(func() { Initialize("info", "text") })

	Info("dropped")
	WithService("pricing").Warn("pricing.total_clamped", "price_list_id", "pl-1")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "pricing.total_clamped", entry["msg"])
	assert.Equal(t, "pricing", entry["service"])
	assert.Equal(t, "pl-1", entry["price_list_id"])
}
