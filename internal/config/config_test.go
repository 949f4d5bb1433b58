package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/internal/walker"
)

func TestLoad(t *testing.T) {
	t.Run("missing_file_gives_defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := Load(filepath.Join(dir, FileName))
		require.NoError(t, err)
		assert.True(t, cfg.SkipHidden)
		assert.Equal(t, walker.DefaultSkipDirs, cfg.SkipDirs)
		assert.Equal(t, "json", cfg.Store)
		assert.Equal(t, 100, cfg.SearchLimit)
		assert.Equal(t, dir, cfg.Dir)
	})

	t.Run("overrides_fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(path, []byte("root: /data\nskip_hidden: false\nskip_dirs: [tmp]\nstore: sqlite\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/data", cfg.Root)
		assert.False(t, cfg.SkipHidden)
		assert.Equal(t, []string{"tmp"}, cfg.SkipDirs)
		assert.Equal(t, "sqlite", cfg.Store)
		assert.Equal(t, 100, cfg.SearchLimit)
		assert.True(t, cfg.SkipSet().Contains("tmp"))
		assert.False(t, cfg.SkipSet().Contains("node_modules"))
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(path, []byte("skip_dirs: [unclosed\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("search_limit_bounds", func(t *testing.T) {
		for body, ok := range map[string]bool{
			"search_limit: 100\n": true,
			"search_limit: 101\n": false,
			"search_limit: -1\n":  false,
		} {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			if ok {
				assert.NoError(t, err, body)
			} else {
				assert.Error(t, err, body)
			}
		}
	})

	t.Run("unknown_store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(path, []byte("store: redis\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestDir(t *testing.T) {
	t.Setenv(HomeEnv, "/tmp/spyglass-home")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/spyglass-home", dir)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(filepath.Dir(path)), cfg)

	require.NoError(t, os.WriteFile(path, []byte("store: sqlite\n"), 0o644))
	require.NoError(t, WriteDefault(path))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store, "existing file is kept")
}
