package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/pyobs/pyobs-launcher/internal/logging"
)

// maxLineSize bounds a single stderr line. Longer lines are truncated.
const maxLineSize = 1024 * 1024

// DefaultKillTimeout is how long Terminate waits before force-killing.
const DefaultKillTimeout = 10 * time.Second

// LaunchFailedPrefix starts the sink line written when the child could not
// be spawned.
const LaunchFailedPrefix = "launch failed: "

// ErrAlreadyStarted is returned by Start when the supervisor has already
// launched (or failed to launch) its process. There is no restart.
var ErrAlreadyStarted = errors.New("supervisor already started")

var errWaitUnsupported = errors.New("wait without reaping not supported")

type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateTerminating
	StateExited
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateRunning:
		return "running"
	case StateTerminating:
		return "terminating"
	case StateExited:
		return "exited"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports how Terminate ended.
type Outcome int

const (
	OutcomeNotRunning Outcome = iota // nothing to stop
	OutcomeGraceful                  // exited after the shutdown signal
	OutcomeKilled                    // needed a force-kill
	OutcomeAbandoned                 // context ended before the process did
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotRunning:
		return "not running"
	case OutcomeGraceful:
		return "graceful"
	case OutcomeKilled:
		return "killed"
	case OutcomeAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Options are shared by every supervisor a Host creates.
type Options struct {
	Pyobs       string
	Python      string
	KillTimeout time.Duration
	Logger      *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.Discard().Logger
}

// Supervisor owns the lifecycle of one pyobs process: spawn, stderr
// streaming into its LogSink, and shutdown with force-kill escalation.
type Supervisor struct {
	path        string
	label       string
	command     Command
	killTimeout time.Duration
	logger      *slog.Logger
	sink        *LogSink

	mu      sync.Mutex
	state   State
	cmd     *exec.Cmd // non-nil only while the child is live
	reaping bool      // set before Wait; no signals are sent from then on
	pid     int
	exitErr error
	done    chan struct{}
}

func NewSupervisor(configPath string, opts Options) *Supervisor {
	label := filepath.Base(configPath)
	timeout := opts.KillTimeout
	if timeout <= 0 {
		timeout = DefaultKillTimeout
	}
	return &Supervisor{
		path:        configPath,
		label:       label,
		command:     BuildCommand(configPath, opts.Python, opts.Pyobs),
		killTimeout: timeout,
		logger:      opts.logger().With("tab", label),
		sink:        NewLogSink(),
		done:        make(chan struct{}),
	}
}

// Start spawns the child with stdout discarded and stderr piped into the
// sink by a dedicated goroutine. A spawn failure is written into the sink
// as well as returned, and leaves the supervisor in StateFailed.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	if s.state != StateNotStarted {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}

	cmd := exec.Command(s.command.Path, s.command.Args...)
	cmd.Dir = s.command.Dir
	configureSysProcAttr(cmd)

	stderr, err := cmd.StderrPipe()
	if err == nil {
		err = cmd.Start()
	}
	if err != nil {
		s.sink.Append(LaunchFailedPrefix + err.Error())
		s.state = StateFailed
		s.exitErr = err
		close(s.done)
		s.mu.Unlock()

		s.logger.Error("launch failed", "command", s.command.String(), "dir", s.command.Dir, "err", err)
		return fmt.Errorf("start %s: %w", s.label, err)
	}

	s.cmd = cmd
	s.pid = cmd.Process.Pid
	s.state = StateRunning
	s.mu.Unlock()

	s.logger.Info("process started", "command", s.command.String(), "dir", s.command.Dir, "pid", s.pid)
	go s.consumeOutput(cmd, stderr)
	return nil
}

// consumeOutput reads stderr until it closes, then reaps the child and
// clears the handle.
func (s *Supervisor) consumeOutput(cmd *exec.Cmd, stderr io.Reader) {
	err := readLines(stderr, maxLineSize, func(line string) {
		s.sink.Append(line)
	})
	if err != nil {
		s.logger.Warn("stderr read failed", "err", err)
		_, _ = io.Copy(io.Discard, stderr)
	}

	pid := cmd.Process.Pid
	if err := waitExit(pid); err != nil && !errors.Is(err, errWaitUnsupported) {
		s.logger.Debug("wait for exit failed", "pid", pid, "err", err)
	}

	s.mu.Lock()
	s.reaping = true
	s.mu.Unlock()

	err = cmd.Wait()

	s.mu.Lock()
	s.cmd = nil
	s.exitErr = err
	s.state = StateExited
	close(s.done)
	s.mu.Unlock()

	if err != nil {
		s.logger.Info("process exited", "pid", pid, "err", err)
	} else {
		s.logger.Info("process exited", "pid", pid)
	}
}

// Terminate stops the child: a graceful signal first, then a force-kill
// every KillTimeout until the process is gone or ctx ends. A supervisor
// without a live child returns OutcomeNotRunning at once.
func (s *Supervisor) Terminate(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.cmd == nil {
		s.mu.Unlock()
		return OutcomeNotRunning, nil
	}
	pid := s.pid
	done := s.done
	s.state = StateTerminating
	var killed bool
	var err error
	if !s.reaping {
		killed, err = interruptProcess(pid)
	}
	s.mu.Unlock()

	outcome := OutcomeGraceful
	if err != nil {
		s.logger.Warn("shutdown signal failed", "pid", pid, "err", err)
	}
	if killed {
		outcome = OutcomeKilled
	}

	timer := time.NewTimer(s.killTimeout)
	defer timer.Stop()
	for {
		select {
		case <-done:
			s.logger.Info("process terminated", "pid", pid, "outcome", outcome.String())
			return outcome, nil
		case <-ctx.Done():
			s.logger.Warn("stopped waiting for process", "pid", pid, "err", ctx.Err())
			return OutcomeAbandoned, ctx.Err()
		case <-timer.C:
			outcome = OutcomeKilled
			s.logger.Warn("kill timeout elapsed, force-killing", "pid", pid, "timeout", s.killTimeout)
			if err := s.kill(); err != nil {
				s.logger.Warn("force-kill failed", "pid", pid, "err", err)
			}
			timer.Reset(s.killTimeout)
		}
	}
}

// kill force-kills the child unless it has already exited and is being
// reaped, in which case its pid may be about to be released.
func (s *Supervisor) kill() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil || s.reaping {
		return nil
	}
	return killProcess(s.pid)
}

func (s *Supervisor) Label() string    { return s.label }
func (s *Supervisor) Path() string     { return s.path }
func (s *Supervisor) Command() Command { return s.command }
func (s *Supervisor) Sink() *LogSink   { return s.sink }

// Done is closed once the child has exited and been reaped, or when the
// launch failed.
func (s *Supervisor) Done() <-chan struct{} { return s.done }

func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Running reports whether a child handle is currently held.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cmd != nil
}

// PID returns the pid of the last spawned child, or 0 if none was spawned.
func (s *Supervisor) PID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pid
}

// ExitErr returns the launch error or the child's exit error.
func (s *Supervisor) ExitErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitErr
}
