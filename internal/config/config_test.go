package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Run("MissingFileUsesDefaults", func(t *testing.T) {
		require.NoError(t, LoadEnvConfig(filepath.Join(t.TempDir(), ".env")))
		assert.Equal(t, "8080", DefaultEnvConfig.APP_PORT)
		assert.Equal(t, "32M", DefaultEnvConfig.MAX_UPLOAD_SIZE)
		assert.Equal(t, 100, DefaultEnvConfig.UPLOAD_LOG_LIMIT)
	})

	t.Run("FromFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("PREVIEW_LAYOUT_PATH=layout.yaml\nUPLOAD_LOG_LIMIT=7\n"), 0o644))
		t.Cleanup(func() {
			os.Unsetenv("PREVIEW_LAYOUT_PATH")
			os.Unsetenv("UPLOAD_LOG_LIMIT")
		})

		require.NoError(t, LoadEnvConfig(path))
		assert.Equal(t, "layout.yaml", DefaultEnvConfig.PREVIEW_LAYOUT_PATH)
		assert.Equal(t, 7, DefaultEnvConfig.UPLOAD_LOG_LIMIT)
	})

	t.Run("EnvironmentWins", func(t *testing.T) {
		t.Setenv("APP_PORT", "9090")
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\n"), 0o644))

		require.NoError(t, LoadEnvConfig(path))
		assert.Equal(t, "9090", DefaultEnvConfig.APP_PORT)
	})

	t.Run("InvalidLimit", func(t *testing.T) {
		t.Setenv("UPLOAD_LOG_LIMIT", "lots")
		assert.Error(t, LoadEnvConfig(filepath.Join(t.TempDir(), ".env")))
	})
}
