package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"jotter/internal/notes"
)

// CreateNoteMsg asks the app to validate and store a new note.
type CreateNoteMsg struct {
	Draft notes.Draft
}

// DeleteNoteMsg asks the app to delete the note at Index in the full list.
// It is only sent after the user confirmed.
type DeleteNoteMsg struct {
	Index int
}

// DataRefreshMsg signals that data should be reloaded
type DataRefreshMsg struct{}

// StatusMsg shows a transient line in the status bar.
type StatusMsg struct {
	Text  string
	Error bool
}

func Status(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}

func StatusError(err error) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: err.Error(), Error: true}
	}
}
