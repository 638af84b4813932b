package border

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/pyobs/pyobs-launcher/internal/ui/styles"
)

// Keybind is a single hint in a panel's bottom border, rendered [Key]Label.
type Keybind struct {
	Key   string
	Label string
}

func RenderKeybind(kb Keybind) string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(styles.KeybindLabel)
	return keyStyle.Render("["+kb.Key+"]") + labelStyle.Render(kb.Label)
}

// KeybindWidth returns the display width of a rendered keybind.
func KeybindWidth(kb Keybind) int {
	return 2 + ansi.StringWidth(kb.Key) + ansi.StringWidth(kb.Label)
}
