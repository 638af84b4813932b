package process

import (
	"strings"
	"sync"
)

// LogSink is the ordered, append-only scrollback of one supervised process.
// It only ever holds trimmed, non-empty lines. Readers get copies, so the UI
// can render a snapshot while the reader goroutine keeps appending.
type LogSink struct {
	mu       sync.RWMutex
	lines    []string
	changeCh chan struct{}
}

func NewLogSink() *LogSink {
	return &LogSink{changeCh: make(chan struct{}, 1)}
}

// Append trims surrounding whitespace from line and stores it. Blank lines
// are dropped and reported as false.
func (s *LogSink) Append(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	s.mu.Lock()
	s.lines = append(s.lines, line)
	s.mu.Unlock()
	s.notify()
	return true
}

func (s *LogSink) Lines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.lines) == 0 {
		return nil
	}
	result := make([]string, len(s.lines))
	copy(result, s.lines)
	return result
}

// Tail returns the last n lines, oldest first.
func (s *LogSink) Tail(n int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.lines) == 0 {
		return nil
	}
	if n > len(s.lines) {
		n = len(s.lines)
	}
	result := make([]string, n)
	copy(result, s.lines[len(s.lines)-n:])
	return result
}

// Range returns lines [from, to), clamped to what the sink holds.
func (s *LogSink) Range(from, to int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from = max(from, 0)
	to = min(to, len(s.lines))
	if from >= to {
		return nil
	}
	result := make([]string, to-from)
	copy(result, s.lines[from:to])
	return result
}

func (s *LogSink) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// Changes delivers a signal after one or more appends. Signals coalesce:
// a slow consumer sees one pending notification, never a backlog.
func (s *LogSink) Changes() <-chan struct{} {
	return s.changeCh
}

func (s *LogSink) notify() {
	select {
	case s.changeCh <- struct{}{}:
	default:
	}
}
