package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pyobs/pyobs-launcher/internal/process"
	"github.com/pyobs/pyobs-launcher/internal/ui/styles"
	"github.com/pyobs/pyobs-launcher/internal/ui/text"
)

// maxLabelWidth caps a single tab label so one long file name cannot push
// every other tab off screen.
const maxLabelWidth = 24

// TabEntry is what the tab bar needs to know about one tab.
type TabEntry struct {
	Label string
	State process.State
}

// TabBar is the one-line strip of tabs above the log view, in config order.
type TabBar struct {
	width  int
	tabs   []TabEntry
	active int
}

func NewTabBar() TabBar {
	return TabBar{}
}

func (t TabBar) View() string {
	if len(t.tabs) == 0 {
		return text.PadRight(styles.TextDimStyle.Render(" No configs loaded"), t.width)
	}

	parts := make([]string, len(t.tabs))
	for i := range t.tabs {
		parts[i] = t.renderTab(i)
	}
	sep := styles.TextDimStyle.Render("│")

	// Drop tabs from the left until the active one fits.
	start := 0
	for start < t.active && lipgloss.Width(strings.Join(parts[start:t.active+1], sep))+2 > t.width {
		start++
	}
	line := strings.Join(parts[start:], sep)
	if start > 0 {
		line = styles.TextDimStyle.Render("‹ ") + line
	}
	return text.PadRight(text.Truncate(line, t.width), t.width)
}

func (t TabBar) renderTab(i int) string {
	tab := t.tabs[i]
	marker := lipgloss.NewStyle().Foreground(styles.StateColor(tab.State)).Render(styles.StateMarker(tab.State))
	label := fmt.Sprintf("%d %s", i+1, text.Truncate(tab.Label, maxLabelWidth))

	style := styles.InactiveTabStyle
	if i == t.active {
		style = styles.ActiveTabStyle
	}
	return style.Render(" ") + marker + style.Render(" "+label+" ")
}

func (t *TabBar) SetTabs(tabs []TabEntry) {
	t.tabs = tabs
	if t.active >= len(tabs) {
		t.active = max(len(tabs)-1, 0)
	}
}

func (t *TabBar) SetActive(i int) {
	if i >= 0 && i < len(t.tabs) {
		t.active = i
	}
}

func (t TabBar) Active() int {
	return t.active
}

func (t *TabBar) SetSize(w int) {
	t.width = w
}
