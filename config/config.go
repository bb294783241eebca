// Package config loads the service configuration from YAML or JSON
// files with environment variable overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/relokit/settler/core/metrics"
	"github.com/relokit/settler/core/planner"
)

type Config struct {
	Planner planner.Config `json:"planner"`
	Lookup  LookupConfig   `json:"lookup"`
	Metrics metrics.Config `json:"metrics"`
	Logging LoggingConfig  `json:"logging"`
	Export  ExportConfig   `json:"export"`
}

// Load reads the file at path and applies SETTLER_-prefixed environment
// overrides ("SETTLER_PLANNER__MAX_TASKS_PER_DAY=5" sets
// planner.max_tasks_per_day).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("SETTLER_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "settler_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Planner.SetDefaults()
	cfg.Lookup.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Export.SetDefaults()
	if err := cfg.Planner.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Lookup.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Export.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Planner.SetDefaults()
	cfg.Lookup.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Export.SetDefaults()
	return cfg
}
