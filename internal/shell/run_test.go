//go:build !windows

package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pyobs/pyobs-launcher/internal/config"
	"github.com/pyobs/pyobs-launcher/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pidScript records its pid next to the config it was started with and
// then waits to be stopped.
const pidScript = `echo $$ > "$1.pid"
echo "up" >&2
while true; do sleep 0.05; done
`

func testConfig(t *testing.T, names ...string) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, "pyobs.sh")
	require.NoError(t, os.WriteFile(script, []byte(pidScript), 0o644))

	cfg := config.DefaultConfig()
	cfg.Pyobs = script
	cfg.Python = "/bin/sh"
	cfg.KillTimeout = 2 * time.Second
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, nil, 0o644))
		cfg.Configs = append(cfg.Configs, p)
	}
	return &cfg, dir
}

// requireChildrenGone checks that every child that got as far as writing
// its pid file is no longer alive.
func requireChildrenGone(t *testing.T, dir string) {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*.pid"))
	require.NoError(t, err)
	for _, f := range files {
		raw, err := os.ReadFile(f)
		require.NoError(t, err)
		pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
		if err != nil {
			continue // written partially before the child was stopped
		}
		err = syscall.Kill(pid, 0)
		assert.True(t, errors.Is(err, syscall.ESRCH), "child %d from %s still alive", pid, filepath.Base(f))
	}
}

func TestRunStopsChildrenOnQuit(t *testing.T) {
	cfg, dir := testConfig(t, "telescope.yaml", "camera.yaml")

	err := Run(context.Background(), cfg, logging.Discard(),
		tea.WithInput(strings.NewReader("q")),
		tea.WithOutput(io.Discard),
	)
	require.NoError(t, err)
	requireChildrenGone(t, dir)
}

func TestRunStopsChildrenWhenCancelled(t *testing.T) {
	cfg, dir := testConfig(t, "weather.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := Run(ctx, cfg, logging.Discard(),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, tea.ErrProgramKilled)
	requireChildrenGone(t, dir)
}

func TestRunWithNoConfigs(t *testing.T) {
	cfg := config.DefaultConfig()
	err := Run(context.Background(), &cfg, logging.Discard(),
		tea.WithInput(strings.NewReader("q")),
		tea.WithOutput(io.Discard),
	)
	require.NoError(t, err)
}
