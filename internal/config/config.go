package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"spyglass/internal/search"
	"spyglass/internal/store"
	"spyglass/internal/walker"
)

// HomeEnv overrides the configuration directory.
const HomeEnv = "SPYGLASS_HOME"

// FileName is the config file looked up inside the configuration directory.
const FileName = "config.yaml"

// Config represents spyglass configuration options
type Config struct {
	// Root is the directory to index. Empty means the user's home directory.
	Root string `yaml:"root"`

	// SkipHidden excludes files and directories whose name starts with "."
	SkipHidden bool `yaml:"skip_hidden"`

	// SkipDirs are directory names (or globs) that are listed but never descended into
	SkipDirs []string `yaml:"skip_dirs"`

	// Store selects the snapshot backend: "json" or "sqlite"
	Store string `yaml:"store"`

	// SearchLimit caps the number of results per query, at most 100
	SearchLimit int `yaml:"search_limit"`

	// Dir is the configuration directory the file was loaded from
	Dir string `yaml:"-"`
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) *Config {
	return &Config{
		SkipHidden:  true,
		SkipDirs:    append([]string(nil), walker.DefaultSkipDirs...),
		Store:       store.BackendJSON,
		SearchLimit: search.DefaultLimit,
		Dir:         dir,
	}
}

// Dir returns the per-user configuration directory.
// Priority order:
//  1. SPYGLASS_HOME environment variable (if set)
//  2. ~/.config/spyglass on macOS
//  3. ~/.spyglass elsewhere
func Dir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, ".config", "spyglass"), nil
	}
	return filepath.Join(home, ".spyglass"), nil
}

// Load reads the config file at path. A missing file yields the defaults
// for the file's directory; unset fields keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Store {
	case "":
		c.Store = store.BackendJSON
	case store.BackendJSON, store.BackendSQLite:
	default:
		return fmt.Errorf("store must be %q or %q, got %q", store.BackendJSON, store.BackendSQLite, c.Store)
	}
	if c.SearchLimit < 0 {
		return fmt.Errorf("search_limit must not be negative, got %d", c.SearchLimit)
	}
	if c.SearchLimit > search.DefaultLimit {
		return fmt.Errorf("search_limit must be at most %d, got %d", search.DefaultLimit, c.SearchLimit)
	}
	if c.SearchLimit == 0 {
		c.SearchLimit = search.DefaultLimit
	}
	return nil
}

// SkipSet returns the configured skip directories as a walker.SkipSet.
func (c *Config) SkipSet() walker.SkipSet {
	return walker.NewSkipSet(c.SkipDirs...)
}

// WriteDefault writes a commented default config file at path unless one
// already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	body, err := yaml.Marshal(Default(filepath.Dir(path)))
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("# spyglass configuration.\n")
	b.WriteString("# root: directory to index (empty = home directory)\n")
	b.WriteString("# skip_dirs: names or globs listed but not descended into\n")
	b.WriteString("# store: json or sqlite\n\n")
	b.WriteString(strings.TrimSpace(string(body)))
	b.WriteByte('\n')

	return os.WriteFile(path, b.Bytes(), 0o644)
}
