package ui

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/pyobs/pyobs-launcher/internal/process"
)

const waitDuration = 3 * time.Second

// fakeHost hands out supervisors that are never started and records the
// order in which tabs are terminated.
type fakeHost struct {
	mu    sync.Mutex
	tabs  []process.Tab
	calls []int
	// block, when set, holds every TerminateAt until it is closed or the
	// context ends.
	block chan struct{}
}

func newFakeHost(labels ...string) *fakeHost {
	h := &fakeHost{}
	for _, label := range labels {
		path := filepath.Join("/etc/pyobs", label)
		h.tabs = append(h.tabs, process.Tab{
			Label:      label,
			Path:       path,
			Supervisor: process.NewSupervisor(path, process.Options{Pyobs: "pyobs"}),
		})
	}
	return h
}

func (h *fakeHost) Tabs() []process.Tab {
	return append([]process.Tab(nil), h.tabs...)
}

func (h *fakeHost) TerminateAt(ctx context.Context, i int) process.Result {
	h.mu.Lock()
	h.calls = append(h.calls, i)
	h.mu.Unlock()

	r := process.Result{Index: i, Label: h.tabs[i].Label, Outcome: process.OutcomeGraceful}
	if h.block != nil {
		select {
		case <-h.block:
		case <-ctx.Done():
			r.Outcome = process.OutcomeAbandoned
			r.Err = ctx.Err()
		}
	}
	return r
}

func (h *fakeHost) Calls() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int(nil), h.calls...)
}

// appAdapter wraps the App (value receiver model) so tests can inspect the
// latest state while teatest drives it.
type appAdapter struct {
	app  App
	init bool
}

func (a *appAdapter) Init() tea.Cmd {
	if !a.init {
		return nil
	}
	return a.app.Init()
}

func (a *appAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.app.Update(msg)
	a.app = m.(App)
	return a, cmd
}

func (a *appAdapter) View() string {
	return a.app.View()
}

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return bytes.Contains(bts, []byte(substr)) },
		teatest.WithDuration(waitDuration),
	)
}

// runCmd executes cmd and flattens batches into the resulting messages.
// Only use it on commands that do not block.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(a App) App {
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m.(App)
}
