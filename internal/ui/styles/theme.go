package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)

	ActiveTabStyle   = lipgloss.NewStyle().Foreground(TitleText).Background(SelectedRowBg).Bold(true)
	InactiveTabStyle = lipgloss.NewStyle().Foreground(TextSecondary)

	// Launch failures and other launcher-generated lines in a log view.
	LogErrorStyle = lipgloss.NewStyle().Foreground(StatusError)
)
