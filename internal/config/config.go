// Package config loads render defaults from an optional TOML file. Flags
// override file values; a missing file means built-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the render defaults a flowcart.toml can set.
type Config struct {
	Scale  float64 `toml:"scale"`
	Format string  `toml:"format"`
	Font   string  `toml:"font"`
	Remote Remote  `toml:"remote"`
}

// Remote holds basic-auth credentials for fetching flow definitions over
// HTTP(S).
type Remote struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// Default returns the built-in render defaults.
func Default() Config {
	return Config{
		Scale:  1.35,
		Format: "png",
	}
}

// Load reads the config file at path. An empty path returns the defaults;
// any file that exists must parse. Unset values fall back to the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1.35
	}
	if cfg.Format == "" {
		cfg.Format = "png"
	}
	return cfg, nil
}
