package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/internal/config"
	"spyglass/internal/store"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagConfig, flagRoot, flagStore = "", "", ""
	})
}

func TestLoadConfigOverrides(t *testing.T) {
	resetFlags(t)
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)

	flagRoot = "relative/dir"
	flagStore = store.BackendSQLite

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, home, cfg.Dir)
	assert.True(t, filepath.IsAbs(cfg.Root))
	assert.Equal(t, store.BackendSQLite, cfg.Store)
}

func TestLoadConfigRejectsBadStore(t *testing.T) {
	resetFlags(t)
	t.Setenv(config.HomeEnv, t.TempDir())
	flagStore = "redis"

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestLoadConfigExplicitFile(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: /srv\nsearch_limit: 7\n"), 0o644))
	flagConfig = path

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv", cfg.Root)
	assert.Equal(t, 7, cfg.SearchLimit)
	assert.Equal(t, dir, cfg.Dir)
}

func TestOpenAppBackends(t *testing.T) {
	for _, backend := range []string{store.BackendJSON, store.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.Default(t.TempDir())
			cfg.Store = backend
			cfg.Root = t.TempDir()

			a, err := openAppWith(cfg)
			require.NoError(t, err)
			defer a.Close()
			assert.Contains(t, a.svc.Location(), cfg.Dir)
			assert.Equal(t, 0, a.svc.IndexedCount())
		})
	}
}

func TestLoadConfigSeedsDefaultFile(t *testing.T) {
	resetFlags(t)
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)

	_, err := loadConfig()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, config.FileName))
}
