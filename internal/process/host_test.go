package process

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hostFixture creates n config files next to each other and returns their
// paths in order, plus options pointing at script.
func hostFixture(t *testing.T, script string, names ...string) (Options, []string) {
	t.Helper()
	opts, first := fixture(t, script, names[0], 2*time.Second)
	paths := []string{first}
	dir := filepath.Dir(first)
	for _, name := range names[1:] {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, nil, 0o644))
		paths = append(paths, p)
	}
	return opts, paths
}

func cleanupHost(t *testing.T, h *Host) {
	for _, tab := range h.Tabs() {
		cleanupSupervisor(t, tab.Supervisor)
	}
}

func TestHostLoadCreatesTabsInOrder(t *testing.T) {
	opts, paths := hostFixture(t, cooperativeScript, "telescope.yaml", "camera.yaml", "weather.yaml")
	h := NewHost(opts)

	require.NoError(t, h.Load(paths))
	cleanupHost(t, h)

	tabs := h.Tabs()
	require.Len(t, tabs, 3)
	assert.Equal(t, 3, h.Len())
	for i, want := range []string{"telescope.yaml", "camera.yaml", "weather.yaml"} {
		assert.Equal(t, want, tabs[i].Label)
		assert.Equal(t, paths[i], tabs[i].Path)
		assert.Same(t, tabs[i].Supervisor, h.Supervisor(i))
		assert.Equal(t, want, tabs[i].Supervisor.Label())
	}

	for _, tab := range tabs {
		sink := tab.Supervisor.Sink()
		require.Eventually(t, func() bool { return sinkContains(sink, "ready") }, testTimeout, testTick)
		assert.True(t, sinkContains(sink, "started "+tab.Label), "each child gets its own config name")
	}
	assert.Equal(t, 3, h.RunningCount())
}

func TestHostLoadEmpty(t *testing.T) {
	h := NewHost(Options{Pyobs: "pyobs"})
	require.NoError(t, h.Load(nil))
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.TerminateAll(context.Background()))
}

func TestHostLoadKeepsFailedTabs(t *testing.T) {
	requireUnix(t)
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")}
	h := NewHost(Options{Pyobs: filepath.Join(dir, "no-such-pyobs")})

	err := h.Load(paths)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.yaml")
	assert.Contains(t, err.Error(), "b.yaml")

	require.Equal(t, 2, h.Len())
	for _, tab := range h.Tabs() {
		assert.Equal(t, StateFailed, tab.Supervisor.State())
	}
	assert.Equal(t, 0, h.RunningCount())
}

func TestHostSupervisorOutOfRange(t *testing.T) {
	h := NewHost(Options{})
	assert.Nil(t, h.Supervisor(-1))
	assert.Nil(t, h.Supervisor(0))

	r := h.TerminateAt(context.Background(), 5)
	assert.Equal(t, OutcomeNotRunning, r.Outcome)
	assert.Equal(t, 5, r.Index)
}

func TestHostTerminateAllSequentialInTabOrder(t *testing.T) {
	opts, paths := hostFixture(t, cooperativeScript, "telescope.yaml", "camera.yaml", "weather.yaml")
	h := NewHost(opts)
	require.NoError(t, h.Load(paths))
	cleanupHost(t, h)

	for _, tab := range h.Tabs() {
		sink := tab.Supervisor.Sink()
		require.Eventually(t, func() bool { return sinkContains(sink, "ready") }, testTimeout, testTick)
	}

	results := h.TerminateAll(context.Background())

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, h.Tabs()[i].Label, r.Label)
		assert.Equal(t, OutcomeGraceful, r.Outcome)
		assert.NoError(t, r.Err)
	}
	assert.Equal(t, 0, h.RunningCount())

	// A second pass finds nothing left to stop.
	for _, r := range h.TerminateAll(context.Background()) {
		assert.Equal(t, OutcomeNotRunning, r.Outcome)
	}
}

func TestHostTerminateAllMixedStates(t *testing.T) {
	opts, paths := hostFixture(t, exitScript, "a.yaml", "b.yaml")
	h := NewHost(opts)
	require.NoError(t, h.Load(paths))
	cleanupHost(t, h)

	for _, tab := range h.Tabs() {
		select {
		case <-tab.Supervisor.Done():
		case <-time.After(testTimeout):
			t.Fatal("child did not exit")
		}
	}

	start := time.Now()
	results := h.TerminateAll(context.Background())
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	for _, r := range results {
		assert.Equal(t, OutcomeNotRunning, r.Outcome)
	}
}
