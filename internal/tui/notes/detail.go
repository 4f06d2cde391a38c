package notes

import (
	"strings"

	"jotter/internal/notes"
	"jotter/internal/tui/theme"
)

func renderDetail(n notes.Note, categories []string, width int) string {
	if width > 80 {
		width = 80
	}
	if width < 30 {
		width = 30
	}

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(n.Title) + "\n")
	b.WriteString(theme.CategoryLabel(n.Category, categories) + theme.Muted.Render("  •  "+n.Date) + "\n\n")
	b.WriteString(detailBodyStyle.Width(width-6).Render(n.Content) + "\n\n")
	b.WriteString(theme.ModalHelp.Render("y: copy  D: delete  esc: close"))

	return detailBoxStyle.Width(width).Render(b.String())
}
