package tui

import "jotter/internal/tui/theme"

var (
	StatusBarStyle = theme.StatusBar
	HelpStyle      = theme.HelpHint
	StatusOkStyle  = theme.Ok
	StatusErrStyle = theme.Error
)
