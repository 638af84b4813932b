package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the launcher config at path, merges it over the defaults,
// applies PYOBS_LAUNCHER_* environment overrides and validates the result.
// Relative entries in configs are resolved against the directory holding
// path.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	override, err := loadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if err := validateFile(override); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	merge(&cfg, override)

	applyEnvOverrides(&cfg)
	resolveConfigPaths(&cfg, filepath.Dir(path))

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// loadFromFile reads and unmarshals a launcher config file. Files ending in
// .toml are decoded as TOML, everything else as YAML.
func loadFromFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
		return &fc, nil
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return &fc, nil
}

// merge copies non-zero fields of override onto base. configs replaces the
// default list entirely when present.
func merge(base *Config, override *fileConfig) {
	if override.Pyobs != "" {
		base.Pyobs = override.Pyobs
	}
	if override.Python != "" {
		base.Python = override.Python
	}
	if override.Configs != nil {
		base.Configs = append([]string(nil), override.Configs...)
	}
	if override.KillTimeout != "" {
		if d, err := time.ParseDuration(override.KillTimeout); err == nil {
			base.KillTimeout = d
		}
	}
	if override.LogFile != "" {
		base.LogFile = override.LogFile
	}
}

// applyEnvOverrides applies PYOBS_LAUNCHER_* environment variables on top of
// the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PYOBS_LAUNCHER_PYOBS"); v != "" {
		cfg.Pyobs = v
	}
	if v := os.Getenv("PYOBS_LAUNCHER_PYTHON"); v != "" {
		cfg.Python = v
	}
	if v := os.Getenv("PYOBS_LAUNCHER_KILL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.KillTimeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: PYOBS_LAUNCHER_KILL_TIMEOUT=%q is not a valid duration, ignoring\n", v)
		}
	}
}

func resolveConfigPaths(cfg *Config, dir string) {
	for i, p := range cfg.Configs {
		if p != "" && !filepath.IsAbs(p) {
			cfg.Configs[i] = filepath.Join(dir, p)
		}
	}
}
