package ui

import (
	"github.com/pyobs/pyobs-launcher/internal/process"
	"github.com/pyobs/pyobs-launcher/internal/ui/panels"
)

// LogLineMsg is sent when new lines are available for a tab.
type LogLineMsg = panels.LogLineMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg

// ProcessExitedMsg is sent once when the child of tab Tab is gone, whether
// it exited, was stopped or never launched.
type ProcessExitedMsg struct {
	Tab int
}

// CloseRequestMsg asks the launcher to stop every child and quit. It is the
// single entry to shutdown for keys and OS signals alike.
type CloseRequestMsg struct{}

// SupervisorStoppedMsg reports that one step of the shutdown chain is done.
type SupervisorStoppedMsg struct {
	Result process.Result
}

// CopiedMsg reports the outcome of copying a tab's log to the clipboard.
type CopiedMsg struct {
	Label string
	Lines int
	Err   error
}
