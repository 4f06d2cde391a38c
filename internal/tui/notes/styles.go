package notes

import (
	"github.com/charmbracelet/lipgloss"

	"jotter/internal/tui/theme"
)

const (
	cardTextWidth    = 30
	cardPreviewLines = 5
	// title + preview + spacer + footer
	cardContentHeight = 1 + cardPreviewLines + 1 + 1
	// border and horizontal padding
	cardOuterWidth  = cardTextWidth + 4
	cardOuterHeight = cardContentHeight + 2
	cardGap         = 1
)

var (
	cardStyle        = theme.Card.Width(cardTextWidth + 2).Height(cardContentHeight)
	cardFocusedStyle = theme.CardFocused.Width(cardTextWidth + 2).Height(cardContentHeight)
	cardTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright)
	cardPreviewStyle = lipgloss.NewStyle().Foreground(theme.Text)
	cardWrapStyle    = lipgloss.NewStyle().Width(cardTextWidth)
	cardDateStyle    = theme.Muted
	cardDeleteStyle  = lipgloss.NewStyle().Foreground(theme.Danger)

	headerStyle      = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(theme.Border)
	headerLabelStyle = theme.Muted
	searchStyle      = lipgloss.NewStyle().Foreground(theme.Success)
	emptyStateStyle  = lipgloss.NewStyle().Foreground(theme.TextMuted).Italic(true)
	hintStyle        = theme.HelpHint

	detailBoxStyle   = theme.ModalBox
	detailTitleStyle = theme.ModalTitle
	detailBodyStyle  = lipgloss.NewStyle().Foreground(theme.Text)

	formLabelStyle   = lipgloss.NewStyle().Foreground(theme.Secondary).Width(10)
	formErrorStyle   = theme.Error
	formCounterStyle = theme.Muted
	formRadioOn      = theme.Ok
	formRadioOff     = theme.Muted
)
