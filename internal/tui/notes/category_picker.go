package notes

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"jotter/internal/tui/theme"
)

var (
	pickerItemStyle     = lipgloss.NewStyle().Foreground(theme.Text)
	pickerSelectedStyle = lipgloss.NewStyle().Foreground(theme.TextBright).Background(theme.Surface).Bold(true)
)

// CategoryPickerModel is a single-select fuzzy picker over the category
// filter options.
type CategoryPickerModel struct {
	options    []string
	cursor     int
	filterText string
	filtered   []int // indices into options
}

// NewCategoryPickerModel creates a picker with the cursor on current.
func NewCategoryPickerModel(options []string, current string) CategoryPickerModel {
	m := CategoryPickerModel{options: options}
	m.recomputeFilter()
	for i, idx := range m.filtered {
		if options[idx] == current {
			m.cursor = i
		}
	}
	return m
}

func (m *CategoryPickerModel) recomputeFilter() {
	if m.filterText == "" {
		m.filtered = make([]int, len(m.options))
		for i := range m.options {
			m.filtered[i] = i
		}
		return
	}

	matches := fuzzy.Find(m.filterText, m.options)
	m.filtered = make([]int, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.Index
	}
}

// Update handles key events. Returns (model, chosen option, done). chosen is
// empty when the picker was cancelled or nothing matched.
func (m CategoryPickerModel) Update(msg tea.KeyMsg) (CategoryPickerModel, string, bool) {
	switch msg.String() {
	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
			return m, m.options[m.filtered[m.cursor]], true
		}
		return m, "", true
	case "esc":
		return m, "", true
	case "backspace":
		if len(m.filterText) > 0 {
			m.filterText = m.filterText[:len(m.filterText)-1]
			m.recomputeFilter()
			m.cursor = 0
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.filterText += string(msg.Runes)
			m.recomputeFilter()
			m.cursor = 0
		}
	}
	return m, "", false
}

// View renders the picker as a modal box.
func (m CategoryPickerModel) View() string {
	var lines []string

	lines = append(lines, theme.ModalTitle.Render("Filter by category"))
	lines = append(lines, "")
	lines = append(lines, searchStyle.Render("/ ")+m.filterText)

	if len(m.filtered) == 0 {
		lines = append(lines, emptyStateStyle.Render("No matching categories"))
	}
	for i, idx := range m.filtered {
		if i == m.cursor {
			lines = append(lines, pickerSelectedStyle.Render("> "+m.options[idx]))
		} else {
			lines = append(lines, pickerItemStyle.Render("  "+m.options[idx]))
		}
	}

	lines = append(lines, "")
	lines = append(lines, theme.ModalHelp.Render(strings.Join([]string{"type: filter", "↑/↓: navigate", "enter: select", "esc: cancel"}, "  ")))

	return theme.ModalBox.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
