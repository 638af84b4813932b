package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// TabWidth is the column stop used when expanding tabs in child output.
const TabWidth = 4

// Truncate shortens s to maxWidth columns, ending in "…" when cut.
// ANSI-aware: escape codes do not count toward the width.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// PadRight pads s with spaces to exactly width columns. Wider strings are
// returned unchanged.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// ExpandTabs replaces tabs with spaces up to the next TabWidth stop. The
// terminal would otherwise advance the cursor past the panel border.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := TabWidth - col%TabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// Plain removes ANSI escape sequences, leaving the visible text.
func Plain(s string) string {
	return ansi.Strip(s)
}
