package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/mordilloSan/go-logger/logger"

	"spyglass/internal/config"
	"spyglass/internal/index"
	"spyglass/internal/store"
)

// app bundles what every command needs.
type app struct {
	cfg   *config.Config
	blobs store.BlobStore
	svc   *index.Service
}

func (a *app) Close() {
	if err := a.blobs.Close(); err != nil {
		logger.Warnf("close snapshot store: %v", err)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.Load(flagConfig)
	} else {
		cfg, err = loadDefaultConfig()
	}
	if err != nil {
		return nil, err
	}

	if flagRoot != "" {
		root, err := filepath.Abs(flagRoot)
		if err != nil {
			return nil, err
		}
		cfg.Root = root
	}
	if flagStore != "" {
		cfg.Store = flagStore
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDefaultConfig loads the per-user config, seeding a commented file on
// first run. Failing to write the seed is not fatal.
func loadDefaultConfig() (*config.Config, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, config.FileName)
	if err := config.WriteDefault(path); err != nil {
		logger.Warnf("could not write default config: %v", err)
	}
	return config.Load(path)
}

func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openAppWith(cfg)
}

func openAppWith(cfg *config.Config) (*app, error) {
	blobs, err := store.OpenBlobStore(cfg.Store, cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	svc := index.New(index.Config{
		Root:       cfg.Root,
		SkipHidden: cfg.SkipHidden,
		Skip:       cfg.SkipSet(),
		Limit:      cfg.SearchLimit,
	}, store.NewIndexStore(blobs))

	logger.DebugKV("service ready", "store", cfg.Store, "location", svc.Location(), "root", cfg.Root)
	return &app{cfg: cfg, blobs: blobs, svc: svc}, nil
}
