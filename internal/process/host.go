package process

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Tab pairs a supervisor with the label shown for it.
type Tab struct {
	Label      string
	Path       string
	Supervisor *Supervisor
}

// Result is the outcome of terminating the supervisor at Index.
type Result struct {
	Index   int
	Label   string
	Outcome Outcome
	Err     error
	Elapsed time.Duration
}

// Host owns one supervisor per loaded pyobs config, kept in load order.
type Host struct {
	opts   Options
	logger *slog.Logger

	mu   sync.RWMutex
	tabs []Tab
}

func NewHost(opts Options) *Host {
	return &Host{opts: opts, logger: opts.logger()}
}

// Load creates and starts a supervisor for each path, in order. Every path
// gets a tab even when its process fails to launch; the joined launch
// errors are returned for the caller to report.
func (h *Host) Load(paths []string) error {
	var errs []error
	for _, p := range paths {
		sup := NewSupervisor(p, h.opts)

		h.mu.Lock()
		h.tabs = append(h.tabs, Tab{Label: sup.Label(), Path: p, Supervisor: sup})
		h.mu.Unlock()

		if err := sup.Start(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Tabs returns a copy of the tab list in load order.
func (h *Host) Tabs() []Tab {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]Tab, len(h.tabs))
	copy(result, h.tabs)
	return result
}

func (h *Host) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tabs)
}

// Supervisor returns the supervisor of tab i, or nil when out of range.
func (h *Host) Supervisor(i int) *Supervisor {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if i < 0 || i >= len(h.tabs) {
		return nil
	}
	return h.tabs[i].Supervisor
}

func (h *Host) RunningCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, t := range h.tabs {
		if t.Supervisor.Running() {
			n++
		}
	}
	return n
}

// TerminateAt terminates the supervisor of tab i and blocks until it is
// done or ctx ends.
func (h *Host) TerminateAt(ctx context.Context, i int) Result {
	sup := h.Supervisor(i)
	if sup == nil {
		return Result{Index: i, Outcome: OutcomeNotRunning}
	}
	start := time.Now()
	outcome, err := sup.Terminate(ctx)
	return Result{
		Index:   i,
		Label:   sup.Label(),
		Outcome: outcome,
		Err:     err,
		Elapsed: time.Since(start),
	}
}

// TerminateAll terminates every supervisor one at a time in tab order, so
// the total wait is the sum of the individual ones.
func (h *Host) TerminateAll(ctx context.Context) []Result {
	n := h.Len()
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		r := h.TerminateAt(ctx, i)
		h.logger.Info("supervisor stopped", "tab", r.Label, "outcome", r.Outcome.String(), "elapsed", r.Elapsed)
		results = append(results, r)
	}
	return results
}
