package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pyobs/pyobs-launcher/internal/logging"
	"github.com/pyobs/pyobs-launcher/internal/process"
	"github.com/pyobs/pyobs-launcher/internal/ui/clipboard"
	"github.com/pyobs/pyobs-launcher/internal/ui/layout"
	"github.com/pyobs/pyobs-launcher/internal/ui/panels"
	"github.com/pyobs/pyobs-launcher/internal/ui/text"
)

// Host is the set of supervised tabs the UI shows and shuts down.
type Host interface {
	Tabs() []process.Tab
	TerminateAt(ctx context.Context, i int) process.Result
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the diagnostic logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithClipboard replaces the clipboard writer used by the copy key.
func WithClipboard(write func(string) error) Option {
	return func(a *App) { a.copyFn = write }
}

type App struct {
	host      Host
	tabs      []process.Tab
	logger    *slog.Logger
	copyFn    func(string) error
	width     int
	height    int
	layout    layout.Layout
	active    int
	tabBar    panels.TabBar
	logView   panels.LogView
	statusBar panels.StatusBar
	help      help.Model
	keys      KeyMap
	ready     bool

	// shutdown
	closing    bool
	closed     bool
	stopCancel context.CancelFunc
	stopCtx    context.Context
	results    []process.Result
}

func NewApp(host Host, opts ...Option) App {
	a := App{
		host:      host,
		tabs:      host.Tabs(),
		logger:    logging.Discard().Logger,
		copyFn:    clipboard.Write,
		tabBar:    panels.NewTabBar(),
		logView:   panels.NewLogView(),
		statusBar: panels.NewStatusBar(),
		help:      help.New(),
		keys:      DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&a)
	}
	a.syncTabs()
	a.selectTab(0)
	return a
}

func (a App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 2*len(a.tabs))
	for i, tab := range a.tabs {
		cmds = append(cmds,
			listenForLines(i, tab.Supervisor.Sink()),
			waitForExit(i, tab.Supervisor),
		)
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case LogLineMsg:
		if msg.Tab < 0 || msg.Tab >= len(a.tabs) {
			return a, nil
		}
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(msg)
		return a, tea.Batch(cmd, listenForLines(msg.Tab, a.tabs[msg.Tab].Supervisor.Sink()))

	case ProcessExitedMsg:
		if msg.Tab < 0 || msg.Tab >= len(a.tabs) {
			return a, nil
		}
		a.syncTabs()
		if a.closing {
			return a, nil
		}
		cmd := a.flashExit(a.tabs[msg.Tab].Supervisor)
		return a, cmd

	case CloseRequestMsg:
		return a.beginClose()

	case SupervisorStoppedMsg:
		return a.onStopped(msg.Result)

	case CopiedMsg:
		if msg.Err != nil {
			a.logger.Warn("copy to clipboard failed", "tab", msg.Label, "err", msg.Err)
			a.statusBar.SetFlashWithLevel("copy failed: "+msg.Err.Error(), panels.FlashError)
		} else {
			a.statusBar.SetFlashWithLevel(fmt.Sprintf("copied %d lines of %s", msg.Lines, msg.Label), panels.FlashSuccess)
		}
		return a, clearFlashAfter(a.statusBar.FlashSeq())

	case ClearFlashMsg:
		if msg.Seq == a.statusBar.FlashSeq() {
			a.statusBar.ClearFlash()
		}
		return a, nil

	case spinner.TickMsg:
		a.syncTabs()
		var cmd tea.Cmd
		a.statusBar, cmd = a.statusBar.Update(msg)
		return a, cmd

	case panels.GTimerExpiredMsg:
		var cmd tea.Cmd
		a.logView, cmd = a.logView.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.closing {
		if key.Matches(msg, a.keys.ForceQuit) && a.stopCancel != nil {
			a.logger.Warn("shutdown wait cancelled by user")
			a.stopCancel()
			a.statusBar.SetFlashWithLevel("no longer waiting for children", panels.FlashWarning)
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.beginClose()
	case key.Matches(msg, a.keys.NextTab):
		if n := len(a.tabs); n > 0 {
			a.selectTab((a.active + 1) % n)
		}
		return a, nil
	case key.Matches(msg, a.keys.PrevTab):
		if n := len(a.tabs); n > 0 {
			a.selectTab((a.active - 1 + n) % n)
		}
		return a, nil
	case key.Matches(msg, a.keys.JumpTab):
		if i := int(msg.Runes[0] - '1'); i < len(a.tabs) {
			a.selectTab(i)
		}
		return a, nil
	case key.Matches(msg, a.keys.Copy):
		return a, a.copyActive()
	}

	var cmd tea.Cmd
	a.logView, cmd = a.logView.Update(msg)
	return a, cmd
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.tabBar.View(),
		a.logView.View(),
		a.statusBar.View(),
	)
}

// Active returns the index of the selected tab.
func (a App) Active() int {
	return a.active
}

// Closed reports whether every tab has been through the shutdown chain.
func (a App) Closed() bool {
	return a.closed
}

// Results returns the shutdown outcome of each tab, in the order stopped.
func (a App) Results() []process.Result {
	return a.results
}

// beginClose starts the shutdown chain: tab 0 is terminated, and each
// SupervisorStoppedMsg starts the next one, so children are stopped one at
// a time in tab order while the UI keeps rendering.
func (a App) beginClose() (tea.Model, tea.Cmd) {
	if a.closing {
		return a, nil
	}
	a.closing = true
	a.stopCtx, a.stopCancel = context.WithCancel(context.Background())
	a.logView.SetFocused(false)
	a.logger.Info("close requested", "tabs", len(a.tabs))

	if len(a.tabs) == 0 {
		a.finishClose()
		return a, tea.Quit
	}
	a.statusBar.SetStopping(a.tabs[0].Label, 0, len(a.tabs))
	return a, tea.Batch(a.statusBar.Tick(), a.stopCmd(0))
}

func (a App) onStopped(r process.Result) (tea.Model, tea.Cmd) {
	a.results = append(a.results, r)
	log := a.logger.Info
	if r.Err != nil || r.Outcome == process.OutcomeKilled {
		log = a.logger.Warn
	}
	log("supervisor stopped", "tab", r.Label, "outcome", r.Outcome.String(), "elapsed", r.Elapsed, "err", r.Err)
	a.syncTabs()

	next := r.Index + 1
	if next >= len(a.tabs) {
		a.finishClose()
		return a, tea.Quit
	}
	a.statusBar.SetStopping(a.tabs[next].Label, next, len(a.tabs))
	return a, a.stopCmd(next)
}

func (a *App) finishClose() {
	a.closed = true
	if a.stopCancel != nil {
		a.stopCancel()
	}
	a.logger.Info("all supervisors stopped")
}

func (a App) stopCmd(i int) tea.Cmd {
	host, ctx := a.host, a.stopCtx
	return func() tea.Msg {
		return SupervisorStoppedMsg{Result: host.TerminateAt(ctx, i)}
	}
}

func (a App) copyActive() tea.Cmd {
	if len(a.tabs) == 0 {
		return nil
	}
	tab := a.tabs[a.active]
	lines := tab.Supervisor.Sink().Lines()
	write := a.copyFn
	return func() tea.Msg {
		err := write(text.Plain(strings.Join(lines, "\n")))
		return CopiedMsg{Label: tab.Label, Lines: len(lines), Err: err}
	}
}

func (a *App) flashExit(s *process.Supervisor) tea.Cmd {
	switch s.State() {
	case process.StateFailed:
		a.statusBar.SetFlashWithLevel(s.Label()+" failed to start", panels.FlashError)
	case process.StateExited:
		if err := s.ExitErr(); err != nil {
			a.statusBar.SetFlashWithLevel(fmt.Sprintf("%s exited: %v", s.Label(), err), panels.FlashWarning)
		} else {
			a.statusBar.SetFlash(s.Label() + " exited")
		}
	default:
		return nil
	}
	return clearFlashAfter(a.statusBar.FlashSeq())
}

func (a *App) selectTab(i int) {
	if len(a.tabs) == 0 {
		a.logView.SetSource(-1, "", nil)
		return
	}
	a.active = i
	a.tabBar.SetActive(i)
	tab := a.tabs[i]
	a.logView.SetSource(i, tab.Label, tab.Supervisor.Sink())
	a.logView.SetStatus(statusLine(tab.Supervisor))
}

// syncTabs pulls the current supervisor states into the tab and status bars.
func (a *App) syncTabs() {
	entries := make([]panels.TabEntry, len(a.tabs))
	for i, tab := range a.tabs {
		entries[i] = panels.TabEntry{Label: tab.Label, State: tab.Supervisor.State()}
	}
	a.tabBar.SetTabs(entries)
	a.statusBar.SetTabs(entries)
	if a.active < len(a.tabs) {
		a.logView.SetStatus(statusLine(a.tabs[a.active].Supervisor))
	}
}

func (a *App) propagateSizes() {
	l := a.layout
	a.tabBar.SetSize(l.TabBarWidth)
	a.logView.SetSize(l.LogViewWidth, l.LogViewHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
	a.help.Width = l.StatusBarWidth / 2
	a.statusBar.SetHelp(a.help.View(a.keys))
}

func statusLine(s *process.Supervisor) string {
	switch s.State() {
	case process.StateRunning:
		return fmt.Sprintf("running · pid %d", s.PID())
	case process.StateTerminating:
		return fmt.Sprintf("stopping · pid %d", s.PID())
	case process.StateExited:
		if err := s.ExitErr(); err != nil {
			return "exited · " + err.Error()
		}
		return "exited"
	case process.StateFailed:
		return "failed to start"
	default:
		return s.State().String()
	}
}

func listenForLines(i int, sink *process.LogSink) tea.Cmd {
	return func() tea.Msg {
		<-sink.Changes()
		return LogLineMsg{Tab: i}
	}
}

func waitForExit(i int, s *process.Supervisor) tea.Cmd {
	return func() tea.Msg {
		<-s.Done()
		return ProcessExitedMsg{Tab: i}
	}
}

func clearFlashAfter(seq int) tea.Cmd {
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{Seq: seq}
	})
}
