package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jotter/internal/tui/theme"
)

// HelpBind represents a single keybind entry
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related keybinds
type HelpSection struct {
	Title string
	Binds []HelpBind
}

var (
	helpSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary)
	helpKeyStyle     = lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary)
	helpDescStyle    = lipgloss.NewStyle().Foreground(theme.Text)
	helpBoxStyle     = theme.ModalBox.BorderForeground(theme.Primary)
)

// RenderHelpPopup renders a centered help popup with the given sections
func RenderHelpPopup(title string, sections []HelpSection, width, height int) string {
	var b strings.Builder

	if title != "" {
		b.WriteString(theme.ModalTitle.Render(title) + "\n\n")
	}

	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(helpSectionStyle.Render(section.Title) + "\n")
		for _, bind := range section.Binds {
			b.WriteString("  " + helpKeyStyle.Width(14).Render(bind.Key) + helpDescStyle.Render(bind.Desc) + "\n")
		}
	}

	b.WriteString("\n" + theme.ModalHelp.Render("Press any key to close"))

	box := helpBoxStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
