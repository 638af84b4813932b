package layout

// Layout holds the computed dimensions of the launcher's three rows.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	TabBarWidth  int
	TabBarHeight int

	LogViewWidth  int
	LogViewHeight int

	StatusBarWidth int
}

const (
	MinWidth  = 40
	MinHeight = 8

	TabBarHeight    = 1
	StatusBarHeight = 1
)

// Calculate splits the terminal into tab bar, log view and status bar.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	l.TabBarWidth = termWidth
	l.TabBarHeight = TabBarHeight
	l.LogViewWidth = termWidth
	l.LogViewHeight = termHeight - TabBarHeight - StatusBarHeight
	l.StatusBarWidth = termWidth

	return l
}
