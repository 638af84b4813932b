package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultPyobs       = "pyobs"
	DefaultKillTimeout = 10 * time.Second
	DefaultPath        = "config.yaml"
)

func DefaultConfig() Config {
	return Config{
		Pyobs:       DefaultPyobs,
		KillTimeout: DefaultKillTimeout,
		LogFile:     defaultLogFile(),
	}
}

// defaultLogFile follows the XDG state directory convention and returns an
// empty path when no home directory can be resolved.
func defaultLogFile() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "pyobs-launcher", "launcher.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "pyobs-launcher", "launcher.log")
}
