package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pyobs/pyobs-launcher/internal/process"
	"github.com/pyobs/pyobs-launcher/internal/ui/border"
	"github.com/pyobs/pyobs-launcher/internal/ui/styles"
	"github.com/pyobs/pyobs-launcher/internal/ui/text"
)

const gTimeout = 300 * time.Millisecond

// LogView shows the stderr lines of one tab. It follows new output until
// the user scrolls up, and resumes following on G. Only the visible window
// of the sink is read and formatted, so refreshing does not grow with the
// length of the log.
type LogView struct {
	viewport    viewport.Model
	width       int
	height      int
	tab         int
	label       string
	status      string
	sink        *process.LogSink
	offset      int // sink index of the first visible line
	total       int
	follow      bool
	focused     bool
	gPending    bool
	scrollSpeed int
}

func NewLogView() LogView {
	return LogView{
		viewport:    viewport.New(0, 0),
		tab:         -1,
		follow:      true,
		focused:     true,
		scrollSpeed: 3,
	}
}

func (l LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	switch msg := msg.(type) {
	case LogLineMsg:
		if msg.Tab == l.tab && l.sink != nil {
			l.refreshContent()
		}
		return l, nil
	case GTimerExpiredMsg:
		l.gPending = false
		return l, nil
	case tea.KeyMsg:
		return l.updateKey(msg)
	}
	return l, nil
}

func (l LogView) updateKey(msg tea.KeyMsg) (LogView, tea.Cmd) {
	key := msg.String()
	if key != "g" {
		l.gPending = false
	}

	switch key {
	case "G", "end":
		l.follow = true
		l.refreshContent()
	case "g":
		if l.gPending {
			l.gPending = false
			l.scrollTo(0)
			return l, nil
		}
		l.gPending = true
		return l, tea.Tick(gTimeout, func(time.Time) tea.Msg {
			return GTimerExpiredMsg{}
		})
	case "home":
		l.scrollTo(0)
	case "j", "down":
		l.scrollTo(l.offset + l.step())
	case "k", "up":
		l.scrollTo(l.offset - l.step())
	case "ctrl+d":
		l.scrollTo(l.offset + l.viewport.Height/2)
	case "ctrl+u":
		l.scrollTo(l.offset - l.viewport.Height/2)
	case "pgdown", " ":
		l.scrollTo(l.offset + l.viewport.Height)
	case "pgup":
		l.scrollTo(l.offset - l.viewport.Height)
	}
	return l, nil
}

func (l LogView) step() int {
	if l.scrollSpeed <= 0 {
		return 1
	}
	return l.scrollSpeed
}

// scrollTo moves the first visible line to offset. Reaching the bottom
// turns follow mode back on.
func (l *LogView) scrollTo(offset int) {
	l.offset = min(max(offset, 0), l.maxOffset())
	l.follow = l.atBottom()
	l.refreshContent()
}

func (l LogView) maxOffset() int {
	return max(l.total-l.viewport.Height, 0)
}

func (l LogView) atBottom() bool {
	return l.offset >= l.maxOffset()
}

func (l LogView) View() string {
	title := "Log"
	if l.label != "" {
		title = "Log: " + l.label
	}

	var keybinds []border.Keybind
	if l.focused {
		keybinds = []border.Keybind{
			{Key: "tab", Label: " next"},
			{Key: "y", Label: "ank"},
			{Key: "G", Label: "bottom"},
			{Key: "g", Label: "g top"},
			{Key: "q", Label: "uit"},
		}
		if !l.follow && !l.atBottom() {
			keybinds = append([]border.Keybind{{Key: "↓", Label: " new output"}}, keybinds...)
		}
	}

	return border.Panel{
		Title:    title,
		Status:   l.status,
		Keybinds: keybinds,
		Width:    l.width,
		Height:   l.height,
		Focused:  l.focused,
	}.Render(l.viewport.View())
}

func (l *LogView) SetSize(w, h int) {
	l.width = w
	l.height = h
	l.viewport.Width = max(w-2, 0)
	l.viewport.Height = max(h-2, 0)
	l.refreshContent()
}

// SetSource points the view at the sink of tab i. A nil sink shows the
// empty state.
func (l *LogView) SetSource(tab int, label string, sink *process.LogSink) {
	if tab == l.tab && sink == l.sink {
		return
	}
	l.tab = tab
	l.label = label
	l.sink = sink
	l.offset = 0
	l.follow = true
	l.gPending = false
	l.refreshContent()
}

// SetStatus sets the text shown at the right of the top border.
func (l *LogView) SetStatus(status string) {
	l.status = status
}

func (l *LogView) SetFocused(focused bool) {
	l.focused = focused
}

func (l *LogView) SetScrollSpeed(speed int) {
	l.scrollSpeed = speed
}

// Following reports whether the view sticks to the newest line.
func (l LogView) Following() bool {
	return l.follow
}

// Tab returns the index of the tab being shown, or -1.
func (l LogView) Tab() int {
	return l.tab
}

// refreshContent reads the visible window from the sink and hands it to
// the viewport.
func (l *LogView) refreshContent() {
	l.total = 0
	if l.sink != nil {
		l.total = l.sink.Len()
	}
	if l.total == 0 {
		l.offset = 0
		empty := "No configs loaded"
		if l.sink != nil {
			empty = "Waiting for output…"
		}
		l.viewport.SetContent(styles.TextDimStyle.Render(empty))
		return
	}

	if l.follow {
		l.offset = l.maxOffset()
	}
	l.offset = min(max(l.offset, 0), l.maxOffset())

	l.viewport.SetContent(formatLogContent(l.sink.Range(l.offset, l.offset+l.viewport.Height)))
	l.viewport.SetYOffset(0)
}

func formatLogContent(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		line = text.ExpandTabs(line)
		if strings.HasPrefix(line, process.LaunchFailedPrefix) {
			line = styles.LogErrorStyle.Render(line)
		}
		b.WriteString(line)
	}
	return b.String()
}
