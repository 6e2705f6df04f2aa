// Package config loads per-repository settings from .repomap.yml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the analysis root.
const FileName = ".repomap.yml"

// Config holds repository-level analysis settings. Zero values mean
// "not set"; the CLI overlays flags on top and the analyzer applies
// its own defaults last.
type Config struct {
	MaxFiles  int      `yaml:"max_files"`
	Top       int      `yaml:"top"`
	Workers   int      `yaml:"workers"`
	Ignore    []string `yaml:"ignore"`
	Languages []string `yaml:"languages"`
}

// Load reads .repomap.yml from root. A missing file is not an error
// and yields an empty config.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", FileName, err)
	}
	return cfg, nil
}
