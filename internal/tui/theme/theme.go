package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Color palette: ANSI 0-15 plus one 256-color accent
// ---------------------------------------------------------------------------

var (
	Text       = lipgloss.Color("7")
	TextMuted  = lipgloss.Color("8")
	TextBright = lipgloss.Color("15")

	Primary       = lipgloss.Color("4")   // blue
	Secondary     = lipgloss.Color("6")   // cyan
	Accent        = lipgloss.Color("5")   // magenta
	Success       = lipgloss.Color("2")   // green
	Warning       = lipgloss.Color("3")   // yellow
	Danger        = lipgloss.Color("1")   // red
	Surface       = lipgloss.Color("236") // dark bg
	Border        = lipgloss.Color("8")   // dim
	BorderFocused = lipgloss.Color("4")   // blue
)

// categoryPalette colors categories by their position in the configured set.
var categoryPalette = []lipgloss.Color{Secondary, Warning, Accent, Success, Primary, Danger}

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Bold  = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Ok    = lipgloss.NewStyle().Bold(true).Foreground(Success)

	Cursor = lipgloss.NewStyle().Bold(true).Foreground(Success)
)

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(Warning)

	ModalHelp = lipgloss.NewStyle().Foreground(TextMuted)

	StatusBar = lipgloss.NewStyle().
			Foreground(TextMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	HelpHint = lipgloss.NewStyle().Foreground(TextMuted)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	CardFocused = Card.BorderForeground(BorderFocused)
)

// CategoryColor returns the color for category given the configured set.
// Unknown categories are muted.
func CategoryColor(category string, categories []string) lipgloss.Color {
	for i, c := range categories {
		if c == category {
			return categoryPalette[i%len(categoryPalette)]
		}
	}
	return TextMuted
}

// CategoryLabel renders a category as a colored tag.
func CategoryLabel(category string, categories []string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(CategoryColor(category, categories)).Render(category)
}
