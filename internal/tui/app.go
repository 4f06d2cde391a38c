package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jotter/internal/logs"
	"jotter/internal/notes/service"
	"jotter/internal/tui/messages"
	noteview "jotter/internal/tui/notes"
	"jotter/internal/tui/shared"
)

// AppModel is the root model. It owns the note service and applies every
// create and delete the notes view asks for.
type AppModel struct {
	svc       service.NoteService
	notesView noteview.NotesModel
	status    messages.StatusMsg
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model
func NewAppModel(svc service.NoteService) AppModel {
	return AppModel{
		svc:       svc,
		notesView: noteview.NewNotesModel(svc),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		contentHeight := msg.Height - 2 // Reserve space for status bar
		m.notesView.SetSize(msg.Width, contentHeight)
		return m, nil

	case messages.CreateNoteMsg:
		d := msg.Draft
		n, err := m.svc.Create(d.Title, d.Content, d.Category)
		if err != nil {
			logs.Logger.Printf("Rejected note: %v", err)
		}
		return m, m.notesView.FinishCreate(n, err)

	case messages.DeleteNoteMsg:
		removed, err := m.svc.Delete(msg.Index)
		if err != nil {
			logs.Logger.Printf("Error deleting note: %v", err)
			return m, messages.StatusError(err)
		}
		m.notesView.FinishDelete(msg.Index)
		if !removed {
			return m, nil
		}
		return m, messages.Status("Note deleted")

	case messages.DataRefreshMsg:
		if err := m.svc.Reload(); err != nil {
			logs.Logger.Printf("Error reloading notes: %v", err)
			return m, messages.StatusError(err)
		}
		m.notesView.SetData(m.svc)
		return m, nil

	case messages.StatusMsg:
		m.status = msg
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		m.status = messages.StatusMsg{}

		if !m.notesView.IsInModalState() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "ctrl+r":
				return m, func() tea.Msg { return messages.DataRefreshMsg{} }
			}
		}
	}

	var cmd tea.Cmd
	m.notesView, cmd = m.notesView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup("jotter - Keyboard Shortcuts", helpSections, m.width, m.height)
	}

	statusText := HelpStyle.Render("?:help | ctrl+r:reload | q:quit")
	switch {
	case m.status.Text != "" && m.status.Error:
		statusText = StatusErrStyle.Render(m.status.Text)
	case m.status.Text != "":
		statusText = StatusOkStyle.Render(m.status.Text)
	}
	statusBar := StatusBarStyle.Width(m.width).Render(statusText)

	return lipgloss.JoinVertical(lipgloss.Left, m.notesView.View(), statusBar)
}

var helpSections = []shared.HelpSection{
	{
		Title: "Global",
		Binds: []shared.HelpBind{
			{Key: "?", Desc: "Show this help"},
			{Key: "ctrl+r", Desc: "Reload notes from storage"},
			{Key: "q", Desc: "Quit"},
			{Key: "ctrl+c", Desc: "Force quit"},
		},
	},
	{
		Title: "Notes",
		Binds: []shared.HelpBind{
			{Key: "h/j/k/l", Desc: "Move between cards"},
			{Key: "enter", Desc: "Open note"},
			{Key: "n", Desc: "New note"},
			{Key: "D", Desc: "Delete note"},
			{Key: "/", Desc: "Search title and content"},
			{Key: "c", Desc: "Next category filter"},
			{Key: "C", Desc: "Pick category filter"},
			{Key: "esc", Desc: "Clear search and filter"},
		},
	},
	{
		Title: "Open note",
		Binds: []shared.HelpBind{
			{Key: "y", Desc: "Copy content"},
			{Key: "D", Desc: "Delete note"},
			{Key: "esc / q", Desc: "Close"},
		},
	},
	{
		Title: "New note",
		Binds: []shared.HelpBind{
			{Key: "tab", Desc: "Next field"},
			{Key: "←/→ or 1-9", Desc: "Choose category"},
			{Key: "ctrl+s", Desc: "Save"},
			{Key: "esc", Desc: "Cancel"},
		},
	},
}
