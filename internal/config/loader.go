package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFileName is the configuration file looked up in the working
// directory when no explicit path is given.
const DefaultConfigFileName = "herdcore.toml"

// Load reads configuration from path, layered over Default(). An empty path
// falls back to ./herdcore.toml when present, otherwise to the defaults.
// The result is validated before being returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultConfigFileName); err == nil {
			path = DefaultConfigFileName
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
