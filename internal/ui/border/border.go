package border

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pyobs/pyobs-launcher/internal/ui/styles"
)

const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	horizBar = "─"
	vertBar  = "│"
)

func borderColor(focused bool) lipgloss.AdaptiveColor {
	if focused {
		return styles.BorderFocused
	}
	return styles.BorderUnfocused
}

// RenderBorderTop renders ╭─ Title ───── status ─╮. The status is dropped
// first when the panel is too narrow for both.
func RenderBorderTop(title, status string, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	bs := lipgloss.NewStyle().Foreground(borderColor(focused))
	innerWidth := width - 2

	if (title == "" && status == "") || innerWidth < 4 {
		return bs.Render(cornerTL + strings.Repeat(horizBar, innerWidth) + cornerTR)
	}

	ts := styles.TitleStyle
	if !focused {
		ts = styles.TextSecondaryStyle.Bold(true)
	}

	// "─ " + title + " "
	left := ""
	used := 0
	if title != "" {
		left = ts.Render(title)
		used = 3 + lipgloss.Width(left)
		if used > innerWidth {
			left = lipgloss.NewStyle().MaxWidth(innerWidth - 3).Render(left)
			used = 3 + lipgloss.Width(left)
		}
	}

	// " " + status + " ─"
	right := ""
	if status != "" {
		r := styles.TextSecondaryStyle.Render(status)
		if used+lipgloss.Width(r)+3 <= innerWidth {
			right = r
			used += lipgloss.Width(r) + 3
		}
	}

	fill := innerWidth - used
	if fill < 0 {
		fill = 0
	}

	var b strings.Builder
	b.WriteString(bs.Render(cornerTL))
	if left != "" {
		b.WriteString(bs.Render(horizBar+" ") + left + bs.Render(" "))
	}
	b.WriteString(bs.Render(strings.Repeat(horizBar, fill)))
	if right != "" {
		b.WriteString(bs.Render(" ") + right + bs.Render(" "+horizBar))
	}
	b.WriteString(bs.Render(cornerTR))
	return b.String()
}

// RenderBorderBottom renders ╰─ [y]ank  [G]bottom ──╯ when focused.
// Keybinds that do not fit are dropped from the end.
func RenderBorderBottom(keybinds []Keybind, width int, focused bool) string {
	if width < 2 {
		return ""
	}
	bs := lipgloss.NewStyle().Foreground(borderColor(focused))
	innerWidth := width - 2

	if !focused || len(keybinds) == 0 {
		return bs.Render(cornerBL + strings.Repeat(horizBar, innerWidth) + cornerBR)
	}

	maxKbWidth := innerWidth - 3
	if maxKbWidth < 0 {
		maxKbWidth = 0
	}

	var parts []string
	usedWidth := 0
	for _, kb := range keybinds {
		w := KeybindWidth(kb)
		sep := 0
		if len(parts) > 0 {
			sep = 2
		}
		if usedWidth+sep+w > maxKbWidth {
			break
		}
		parts = append(parts, RenderKeybind(kb))
		usedWidth += sep + w
	}

	return bs.Render(cornerBL+horizBar+" ") +
		strings.Join(parts, "  ") +
		bs.Render(" "+strings.Repeat(horizBar, maxKbWidth-usedWidth)+cornerBR)
}

// RenderBorderSides wraps each content line in │ … │, cropping or padding
// it to width-2 columns. Widths are ANSI-aware.
func RenderBorderSides(content string, width int, focused bool) string {
	if width < 2 {
		return content
	}
	bs := lipgloss.NewStyle().Foreground(borderColor(focused))
	innerWidth := width - 2
	crop := lipgloss.NewStyle().MaxWidth(innerWidth)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		w := lipgloss.Width(line)
		if w > innerWidth {
			line = crop.Render(line)
			w = lipgloss.Width(line)
		}
		if w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		lines[i] = bs.Render(vertBar) + line + bs.Render(vertBar)
	}
	return strings.Join(lines, "\n")
}
