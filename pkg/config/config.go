package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is looked up in the project root when no explicit path is given
const FileName = ".jig.toml"

type Config struct {
	Exclude Exclude `toml:"exclude"`
	Resolve Resolve `toml:"resolve"`
	Watch   Watch   `toml:"watch"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`  // glob patterns matched against directory names
	Files []string `toml:"files"` // glob patterns matched against file names
}

type Resolve struct {
	Builtins     []string `toml:"builtins"` // extra names that never need an import
	AddMissing   *bool    `toml:"add_missing"`
	RemoveUnused *bool    `toml:"remove_unused"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load decodes the TOML file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault loads path, or FileName inside root when path is empty. A
// missing implicit file yields the defaults; a missing explicit file is an
// error.
func LoadOrDefault(path, root string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(filepath.Join(root, FileName))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	if c.Exclude.Dirs == nil {
		c.Exclude.Dirs = []string{"target", "build", "out", "node_modules", ".*"}
	}
	if c.Exclude.Files == nil {
		c.Exclude.Files = []string{"module-info.java"}
	}
	if c.Resolve.AddMissing == nil {
		c.Resolve.AddMissing = ptr(true)
	}
	if c.Resolve.RemoveUnused == nil {
		c.Resolve.RemoveUnused = ptr(true)
	}
	// Default debounce if not set
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
}

func ptr[T any](v T) *T {
	return &v
}
