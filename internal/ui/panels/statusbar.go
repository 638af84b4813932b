package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pyobs/pyobs-launcher/internal/process"
	"github.com/pyobs/pyobs-launcher/internal/ui/styles"
)

const flashDurationVal = 5 * time.Second

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width      int
	running    int
	exited     int
	failed     int
	help       string
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	flashSeq   int

	// shutdown progress
	closing   bool
	stopping  string
	stopIndex int
	stopTotal int
	spinner   spinner.Model
}

func NewStatusBar() StatusBar {
	return StatusBar{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.StatusWarning)),
		),
	}
}

// Update advances the spinner while the launcher is shutting down.
func (s StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && s.closing {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Tick starts the spinner animation.
func (s StatusBar) Tick() tea.Cmd {
	return s.spinner.Tick
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	var left string
	if s.closing {
		left = " " + s.spinner.View() + " " + styles.TextPrimaryStyle.Render(
			fmt.Sprintf("stopping %s (%d/%d)…", s.stopping, s.stopIndex+1, s.stopTotal))
	} else {
		left = " " + styles.TextSecondaryStyle.Render("pyobs-launcher "+Version) + sep + s.counts()
	}

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default:
			icon, color = "●", styles.StatusRunning
		}
		left += sep + lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon+" "+s.flash)
	}

	right := ""
	if s.help != "" && !s.closing {
		right = s.help + " "
	}

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Hints go first when space runs out.
		right = ""
		gap = max(s.width-lipgloss.Width(left), 1)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (s StatusBar) counts() string {
	parts := []string{
		lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(fmt.Sprintf("%d running", s.running)),
		lipgloss.NewStyle().Foreground(styles.StatusPending).Render(fmt.Sprintf("%d exited", s.exited)),
	}
	if s.failed > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.StatusError).Render(fmt.Sprintf("%d failed", s.failed)))
	}
	return strings.Join(parts, " ")
}

// SetTabs recounts the per-state totals.
func (s *StatusBar) SetTabs(tabs []TabEntry) {
	s.running, s.exited, s.failed = 0, 0, 0
	for _, t := range tabs {
		switch t.State {
		case process.StateRunning, process.StateTerminating:
			s.running++
		case process.StateExited:
			s.exited++
		case process.StateFailed:
			s.failed++
		}
	}
}

// SetStopping switches the bar into shutdown mode, showing which of total
// tabs (zero-based index) is being stopped.
func (s *StatusBar) SetStopping(label string, index, total int) {
	s.closing = true
	s.stopping = label
	s.stopIndex = index
	s.stopTotal = total
}

func (s StatusBar) Closing() bool {
	return s.closing
}

func (s *StatusBar) SetHelp(help string) {
	s.help = help
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
	s.flashSeq++
}

// FlashSeq identifies the current flash. It changes on every SetFlash.
func (s StatusBar) FlashSeq() int {
	return s.flashSeq
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}
