package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHelpers(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	require.NoError(t, SetLevel("info"))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	ctx := WithRequestID(context.Background(), "req-1")
	InfoLog(ctx, "ingested %d rows", 3)
	DebugLog(ctx, "dropped at info level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ingested 3 rows", entry["message"])
	assert.Equal(t, "req-1", entry["request_id"])
}

func TestSetLevel_Invalid(t *testing.T) {
	assert.Error(t, SetLevel("loud"))
}

func TestInitLogging_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	InitLogging(path)
	t.Cleanup(func() { _ = Close() })

	ErrorLog(context.Background(), "boom: %v", "disk")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"message":"boom: disk"`)
}

func TestClose_ReleasesLogFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	InitLogging(first)
	mu.RLock()
	opened := logFile
	mu.RUnlock()
	require.NotNil(t, opened)

	// reinitialising closes the previous file
	InitLogging(second)
	_, err := opened.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)

	require.NoError(t, Close())
	mu.RLock()
	assert.Nil(t, logFile)
	mu.RUnlock()

	ErrorLog(context.Background(), "after close")
	raw, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "after close")

	assert.NoError(t, Close())
}
