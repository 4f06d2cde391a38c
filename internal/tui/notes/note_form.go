package notes

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jotter/internal/notes"
	"jotter/internal/tui/theme"
)

type formField int

const (
	fieldTitle formField = iota
	fieldContent
	fieldCategory
	fieldCount
)

// NoteFormResultMsg is sent when the form is submitted or cancelled
type NoteFormResultMsg struct {
	Draft     notes.Draft
	Cancelled bool
}

// NoteFormModel collects a title, content and category for a new note.
type NoteFormModel struct {
	title      textinput.Model
	content    textarea.Model
	categories []string
	selected   int    // -1 until a category is chosen
	fallback   string // used when no category is chosen
	focus      formField
	err        string
	Width      int
}

// NewNoteForm creates an empty form. fallback is the category submitted when
// the user does not pick one; it may be empty.
func NewNoteForm(categories []string, fallback string, width int) *NoteFormModel {
	if width < 40 {
		width = 40
	}

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Prompt = ""
	ti.Width = width - 20

	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(width - 16)
	ta.SetHeight(6)

	m := &NoteFormModel{
		title:      ti,
		content:    ta,
		categories: categories,
		selected:   -1,
		fallback:   fallback,
		Width:      width,
	}
	m.title.Focus()
	return m
}

// Init starts the cursor blink.
func (m *NoteFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Draft returns the current input. The values are untrimmed; the service
// normalizes them.
func (m *NoteFormModel) Draft() notes.Draft {
	category := m.fallback
	if m.selected >= 0 && m.selected < len(m.categories) {
		category = m.categories[m.selected]
	}
	return notes.Draft{
		Title:    m.title.Value(),
		Content:  m.content.Value(),
		Category: category,
	}
}

// SetError shows a validation or storage failure under the form.
func (m *NoteFormModel) SetError(err error) {
	if err == nil {
		m.err = ""
		return
	}
	m.err = err.Error()
}

// Update handles messages for the form
func (m *NoteFormModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "ctrl+s":
		draft := m.Draft()
		return func() tea.Msg {
			return NoteFormResultMsg{Draft: draft}
		}
	case "esc":
		return func() tea.Msg {
			return NoteFormResultMsg{Cancelled: true}
		}
	case "tab":
		return m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	}

	switch m.focus {
	case fieldTitle:
		if keyMsg.String() == "enter" {
			return m.setFocus(fieldContent)
		}
	case fieldCategory:
		m.handleCategoryKey(keyMsg)
		return nil
	}

	return m.updateFocused(msg)
}

func (m *NoteFormModel) handleCategoryKey(msg tea.KeyMsg) {
	if len(m.categories) == 0 {
		return
	}
	switch msg.String() {
	case "left", "h":
		if m.selected <= 0 {
			m.selected = len(m.categories) - 1
		} else {
			m.selected--
		}
	case "right", "l", " ":
		m.selected = (m.selected + 1) % len(m.categories)
	default:
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(m.categories) {
			m.selected = n - 1
		}
	}
}

func (m *NoteFormModel) setFocus(field formField) tea.Cmd {
	m.focus = field
	m.title.Blur()
	m.content.Blur()
	switch field {
	case fieldTitle:
		return m.title.Focus()
	case fieldContent:
		return m.content.Focus()
	}
	return nil
}

func (m *NoteFormModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
	}
	return cmd
}

// View renders the form
func (m *NoteFormModel) View() string {
	var b strings.Builder

	b.WriteString(theme.ModalTitle.Render("New note") + "\n\n")

	titleCount := fmt.Sprintf("%d/%d", utf8.RuneCountInString(strings.TrimSpace(m.title.Value())), notes.MaxTitleLen)
	b.WriteString(m.label("Title", fieldTitle) + m.title.View() + " " + formCounterStyle.Render(titleCount) + "\n\n")

	contentCount := fmt.Sprintf("%d/%d", utf8.RuneCountInString(strings.TrimSpace(m.content.Value())), notes.MaxContentLen)
	b.WriteString(m.label("Content", fieldContent) + formCounterStyle.Render(contentCount) + "\n")
	b.WriteString(m.content.View() + "\n\n")

	b.WriteString(m.label("Category", fieldCategory) + m.renderCategories() + "\n")
	if m.selected < 0 && m.fallback != "" {
		b.WriteString(formLabelStyle.Render("") + theme.Muted.Render("defaults to "+m.fallback) + "\n")
	}

	if m.err != "" {
		b.WriteString("\n" + formErrorStyle.Render(m.err) + "\n")
	}

	b.WriteString("\n" + theme.ModalHelp.Render("tab: next field  ←/→: category  ctrl+s: save  esc: cancel"))

	return theme.ModalBox.Width(m.Width).Render(b.String())
}

func (m *NoteFormModel) label(text string, field formField) string {
	if m.focus == field {
		return formLabelStyle.Bold(true).Foreground(theme.BorderFocused).Render(text)
	}
	return formLabelStyle.Render(text)
}

func (m *NoteFormModel) renderCategories() string {
	parts := make([]string, len(m.categories))
	for i, c := range m.categories {
		if i == m.selected {
			parts[i] = formRadioOn.Render("(•) ") + theme.CategoryLabel(c, m.categories)
		} else {
			parts[i] = formRadioOff.Render("( ) " + c)
		}
	}
	return strings.Join(parts, "  ")
}
