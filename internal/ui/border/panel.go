package border

import "strings"

// Panel describes a bordered box: title and status in the top border,
// keybind hints in the bottom one.
type Panel struct {
	Title    string
	Status   string
	Keybinds []Keybind
	Width    int
	Height   int
	Focused  bool
}

// Render pads or crops content to exactly Height-2 rows and Width-2 columns
// and frames it.
func (p Panel) Render(content string) string {
	if p.Height < 2 || p.Width < 2 {
		return ""
	}
	innerHeight := p.Height - 2

	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}

	top := RenderBorderTop(p.Title, p.Status, p.Width, p.Focused)
	if innerHeight == 0 {
		return top + "\n" + RenderBorderBottom(p.Keybinds, p.Width, p.Focused)
	}
	middle := RenderBorderSides(strings.Join(lines, "\n"), p.Width, p.Focused)
	return top + "\n" + middle + "\n" + RenderBorderBottom(p.Keybinds, p.Width, p.Focused)
}
