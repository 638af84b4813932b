package config

import "time"

// Config is the launcher's startup configuration.
type Config struct {
	// Pyobs is the executable started once per entry in Configs.
	Pyobs string
	// Python, when set, is used as the interpreter and Pyobs becomes its
	// first argument.
	Python string
	// Configs lists the pyobs configuration files to launch, in tab order.
	Configs     []string
	KillTimeout time.Duration
	LogFile     string
}

// fileConfig mirrors the on-disk layout. Durations stay strings until
// validate parses them so a bad value is reported with its key.
type fileConfig struct {
	Pyobs       string   `yaml:"pyobs" toml:"pyobs"`
	Python      string   `yaml:"python" toml:"python"`
	Configs     []string `yaml:"configs" toml:"configs"`
	KillTimeout string   `yaml:"kill_timeout" toml:"kill_timeout"`
	LogFile     string   `yaml:"log_file" toml:"log_file"`
}
