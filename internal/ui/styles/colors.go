package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/pyobs/pyobs-launcher/internal/process"
)

// Semantic colors as AdaptiveColor{Light, Dark}.
var (
	BorderFocused   = lipgloss.AdaptiveColor{Light: "#2e5cb8", Dark: "#7aa2f7"}
	BorderUnfocused = lipgloss.AdaptiveColor{Light: "#c0c0c0", Dark: "#3b4261"}
	TitleText       = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	KeybindKey      = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	KeybindLabel    = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextPrimary     = lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"}
	TextSecondary   = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}
	TextDim         = lipgloss.AdaptiveColor{Light: "#b0b0b0", Dark: "#3b4261"}

	StatusRunning = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#7dcfff"}
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	StatusError   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	StatusWarning = lipgloss.AdaptiveColor{Light: "#8a6200", Dark: "#e0af68"}
	StatusPending = lipgloss.AdaptiveColor{Light: "#8890a8", Dark: "#565f89"}

	SelectedRowBg = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#292e42"}
)

// StateColor returns the status color for a supervisor state.
func StateColor(state process.State) lipgloss.AdaptiveColor {
	switch state {
	case process.StateRunning:
		return StatusRunning
	case process.StateTerminating:
		return StatusWarning
	case process.StateFailed:
		return StatusError
	case process.StateExited:
		return StatusPending
	default:
		return TextDim
	}
}

// StateMarker returns the glyph shown next to a tab label.
func StateMarker(state process.State) string {
	switch state {
	case process.StateRunning:
		return "●"
	case process.StateTerminating:
		return "◌"
	case process.StateFailed:
		return "✗"
	case process.StateExited:
		return "○"
	default:
		return "·"
	}
}
