package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultIndexURL is the upstream Zig release index.
const DefaultIndexURL = "https://ziglang.org/download/index.json"

// Config captures user-tunable settings for zigup.
type Config struct {
	Version     int    `yaml:"version"`
	IndexURL    string `yaml:"index_url"`
	Proxy       string `yaml:"proxy,omitempty"`
	BinDir      string `yaml:"bin_dir"`
	WrapperName string `yaml:"wrapper_name"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version:     1,
		IndexURL:    DefaultIndexURL,
		BinDir:      "~/.cargo/bin",
		WrapperName: "zig",
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills fields the YAML left empty.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if c.IndexURL == "" {
		c.IndexURL = defaults.IndexURL
	}
	if c.BinDir == "" {
		c.BinDir = defaults.BinDir
	}
	if c.WrapperName == "" {
		c.WrapperName = defaults.WrapperName
	}
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}
