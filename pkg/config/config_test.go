package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Content, cfg.Content)
	assert.Equal(t, CacheMemory, cfg.CacheBackend)
	assert.Equal(t, ":8080", cfg.ServerAddress())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busroute.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
content: gs://editorial/content.json
cache_backend: sqlite
cache_path: /var/cache/bus-route.db
port: "9000"
`), 0644))

	t.Setenv("BUSROUTE_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gs://editorial/content.json", cfg.Content)
	assert.Equal(t, CacheSQLite, cfg.CacheBackend)
	assert.Equal(t, "/var/cache/bus-route.db", cfg.CachePath)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "./public", cfg.PublicDir)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("BUSROUTE_CACHE_BACKEND", "redis")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrUnknownCacheBackend)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Content = ""
	assert.ErrorIs(t, cfg.Validate(), ErrContentNotSet)
}
