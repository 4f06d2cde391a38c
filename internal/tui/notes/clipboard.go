package notes

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"

	"jotter/internal/notes"
	"jotter/internal/tui/messages"
)

var clipboardWriteAll = clipboard.WriteAll
var clipboardWriteOSC52 = writeOSC52Clipboard

// copyText tries the system clipboard first and falls back to an OSC52
// escape sequence, which works over ssh in most terminals.
func copyText(text string) error {
	err := clipboardWriteAll(text)
	if err == nil {
		return nil
	}
	if oscErr := clipboardWriteOSC52(text); oscErr != nil {
		return fmt.Errorf("system clipboard failed: %v; OSC52 fallback failed: %v", err, oscErr)
	}
	return nil
}

// copyContent copies the note body and reports the outcome in the status bar.
func copyContent(n notes.Note) tea.Cmd {
	return func() tea.Msg {
		if err := copyText(n.Content); err != nil {
			return messages.StatusMsg{Text: "Could not copy note: " + err.Error(), Error: true}
		}
		return messages.StatusMsg{Text: "Copied \"" + n.Title + "\" to clipboard"}
	}
}

func writeOSC52Clipboard(text string) error {
	if !shouldAttemptOSC52() {
		return errors.New("OSC52 unavailable for this terminal")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()
	return writeOSC52Sequence(tty, text)
}

func writeOSC52Sequence(w io.Writer, text string) error {
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(strings.ToLower(os.Getenv("TERM")), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}

func shouldAttemptOSC52() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("JOTTER_DISABLE_OSC52"))) {
	case "1", "true", "yes", "on":
		return false
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	return term != "" && !strings.EqualFold(term, "dumb")
}
