package process

import (
	"path/filepath"
	"strings"
)

// Command is how one pyobs configuration gets launched.
type Command struct {
	Path string
	Args []string
	Dir  string
}

// BuildCommand returns the launch command for configPath. pyobs receives the
// config's base name as its only argument and runs inside the config's
// directory, so relative paths inside the config keep working. When python
// is set, pyobs is passed to it as a script.
func BuildCommand(configPath, python, pyobs string) Command {
	name := filepath.Base(configPath)
	dir := filepath.Dir(configPath)
	if python == "" {
		return Command{Path: pyobs, Args: []string{name}, Dir: dir}
	}
	return Command{Path: python, Args: []string{pyobs, name}, Dir: dir}
}

// Argv returns the full argument vector including the executable.
func (c Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}
