package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jotter/internal/logs"
	"jotter/internal/notes"
	"jotter/internal/notes/service"
	"jotter/internal/tui/messages"
	"jotter/internal/tui/shared"
	"jotter/internal/tui/theme"
)

// NotesModel shows the notes as a grid of cards and owns the form, detail
// and confirmation overlays. It never mutates the list itself; creates and
// deletes are sent to the app as messages.
type NotesModel struct {
	// Data
	svc        service.NoteService
	categories []string
	total      int
	matches    []notes.Match

	// Navigation
	cursor    int
	scrollRow int

	// State
	query       notes.Query
	detailIndex int // index in the full list, -1 when closed

	// Sub-components
	form              *NoteFormModel
	picker            *CategoryPickerModel
	confirmationModal *ConfirmationModal

	// Pending delete (for confirmation modal)
	pendingDeleteIndex int

	// Inline search
	searchActive bool
	searchInput  textinput.Model

	// Dimensions
	width  int
	height int
}

// NewNotesModel creates the notes view
func NewNotesModel(svc service.NoteService) NotesModel {
	m := NotesModel{
		svc:                svc,
		query:              notes.Query{Category: notes.CategoryAll},
		detailIndex:        -1,
		pendingDeleteIndex: -1,
	}
	m.loadNotes()
	return m
}

// SetSize updates the dimensions
func (m *NotesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
}

// SetData refreshes data from the note service
func (m *NotesModel) SetData(svc service.NoteService) {
	m.svc = svc
	m.loadNotes()
}

func (m *NotesModel) loadNotes() {
	m.categories = m.svc.Categories()
	m.total = len(m.svc.List())
	if m.detailIndex >= m.total {
		m.detailIndex = -1
	}
	m.refreshDisplay()
}

func (m *NotesModel) refreshDisplay() {
	m.matches = m.svc.Filter(m.query)
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

// Query returns the active search and category filter.
func (m NotesModel) Query() notes.Query {
	return m.query
}

// DetailIndex returns the list index shown in the detail overlay, or -1.
func (m NotesModel) DetailIndex() int {
	return m.detailIndex
}

// OpenDetail shows the note at index, replacing any open detail.
func (m *NotesModel) OpenDetail(index int) {
	if _, ok := m.svc.Get(index); !ok {
		return
	}
	m.detailIndex = index
}

// CloseDetail hides the detail overlay.
func (m *NotesModel) CloseDetail() {
	m.detailIndex = -1
}

// FinishCreate applies the outcome of a create request. On failure the form
// stays open with its input and shows err.
func (m *NotesModel) FinishCreate(n *notes.Note, err error) tea.Cmd {
	if err != nil {
		if m.form != nil {
			m.form.SetError(err)
		}
		return nil
	}
	m.form = nil
	m.loadNotes()
	m.cursor = 0
	m.ensureCursorVisible()
	return messages.Status(fmt.Sprintf("Saved %q", n.Title))
}

// FinishDelete refreshes after the note at index was removed. The detail
// overlay closes since list indices have shifted.
func (m *NotesModel) FinishDelete(index int) {
	logs.Logger.Printf("Removed note at index %d from view", index)
	m.detailIndex = -1
	m.loadNotes()
}

// Update handles messages for the notes view
func (m NotesModel) Update(msg tea.Msg) (NotesModel, tea.Cmd) {
	// Handle sub-component results first
	switch msg := msg.(type) {
	case NoteFormResultMsg:
		return m.handleFormResult(msg)
	case ConfirmationResultMsg:
		return m.handleConfirmationResult(msg)
	}

	// Handle sub-component updates
	if m.confirmationModal != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m, m.confirmationModal.Update(keyMsg)
		}
		return m, nil
	}
	if m.picker != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			picker, chosen, done := m.picker.Update(keyMsg)
			if !done {
				m.picker = &picker
				return m, nil
			}
			m.picker = nil
			if chosen != "" {
				m.setCategory(chosen)
			}
		}
		return m, nil
	}
	if m.form != nil {
		return m, m.form.Update(msg)
	}

	if m.searchActive {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			return m.handleSearchMode(msg)
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.detailIndex >= 0 {
		return m.handleDetailMode(keyMsg)
	}
	return m.handleNormalMode(keyMsg)
}

// View renders the notes view
func (m NotesModel) View() string {
	if m.confirmationModal != nil {
		return m.place(m.confirmationModal.View())
	}
	if m.picker != nil {
		return m.place(m.picker.View())
	}
	if m.form != nil {
		return m.place(m.form.View())
	}
	if m.detailIndex >= 0 {
		if n, ok := m.svc.Get(m.detailIndex); ok {
			return m.place(renderDetail(*n, m.categories, m.width-4))
		}
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.searchActive {
		b.WriteString(searchStyle.Render("/") + m.searchInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderGrid())

	var hintsText string
	if m.searchActive {
		hintsText = "[enter] done  [esc] clear"
	} else {
		hintsText = "[n] new  [enter] open  [D] delete  [/] search  [c/C] category  [?] help  [q] quit"
	}
	hints := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hintStyle.Render(hintsText))

	// the empty state sits mid-screen
	return shared.CenterWithBottomHints(b.String(), hints, m.height, len(m.matches) == 0)
}

func (m NotesModel) place(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box, lipgloss.WithWhitespaceChars(" "))
}

func (m NotesModel) renderHeader() string {
	parts := []string{
		theme.Title.Render("jotter"),
		headerLabelStyle.Render("category: ") + m.categoryText(),
		headerLabelStyle.Render(fmt.Sprintf("%d of %d notes", len(m.matches), m.total)),
	}
	if m.query.Search != "" && !m.searchActive {
		parts = append(parts, headerLabelStyle.Render("search: ")+searchStyle.Render(m.query.Search))
	}
	return headerStyle.Width(m.width).Render(strings.Join(parts, "  •  "))
}

func (m NotesModel) categoryText() string {
	if m.query.Category == "" || m.query.Category == notes.CategoryAll {
		return theme.Bold.Render(notes.CategoryAll)
	}
	return theme.CategoryLabel(m.query.Category, m.categories)
}

func (m NotesModel) renderGrid() string {
	if len(m.matches) == 0 {
		if m.total == 0 {
			return emptyStateStyle.Render("No notes found. Press n to write one.")
		}
		return emptyStateStyle.Render("No notes found.")
	}

	cols := m.columns()
	start := m.scrollRow * cols
	end := start + m.visibleRows()*cols
	if end > len(m.matches) {
		end = len(m.matches)
	}

	var rows []string
	for rowStart := start; rowStart < end; rowStart += cols {
		rowEnd := rowStart + cols
		if rowEnd > end {
			rowEnd = end
		}
		var cards []string
		for i := rowStart; i < rowEnd; i++ {
			if i > rowStart {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, m.renderCard(m.matches[i].Note, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (m NotesModel) renderCard(n notes.Note, focused bool) string {
	title := cardTitleStyle.Render(runewidth.Truncate(n.Title, cardTextWidth, "…"))

	previewLines := wrapPreview(n.Content)
	for i, line := range previewLines {
		previewLines[i] = cardPreviewStyle.Render(line)
	}
	for len(previewLines) < cardPreviewLines {
		previewLines = append(previewLines, "")
	}

	category := theme.CategoryLabel(n.Category, m.categories)
	date := cardDateStyle.Render(n.Date)
	if focused {
		date = cardDeleteStyle.Render("D✕") + " " + date
	}
	gap := cardTextWidth - lipgloss.Width(category) - lipgloss.Width(date)
	if gap < 1 {
		gap = 1
	}
	footer := category + strings.Repeat(" ", gap) + date

	body := title + "\n" + strings.Join(previewLines, "\n") + "\n\n" + footer
	if focused {
		return cardFocusedStyle.Render(body)
	}
	return cardStyle.Render(body)
}

// wrapPreview wraps the note preview to the card width. When it needs more
// than cardPreviewLines lines the last kept line ends in "...".
func wrapPreview(content string) []string {
	wrapped := cardWrapStyle.Render(notes.Preview(content))
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	if len(lines) <= cardPreviewLines {
		return lines
	}
	lines = lines[:cardPreviewLines]
	last := strings.TrimSuffix(lines[cardPreviewLines-1], "...")
	lines[cardPreviewLines-1] = runewidth.Truncate(last, cardTextWidth-3, "") + "..."
	return lines
}

// Input handlers

func (m NotesModel) handleNormalMode(msg tea.KeyMsg) (NotesModel, tea.Cmd) {
	switch msg.String() {
	case "l", "right":
		m.moveCursor(1)
	case "h", "left":
		m.moveCursor(-1)
	case "j", "down":
		m.moveCursor(m.columns())
	case "k", "up":
		m.moveCursor(-m.columns())
	case "g", "home":
		m.cursor = 0
		m.ensureCursorVisible()
	case "G", "end":
		m.cursor = len(m.matches) - 1
		m.moveCursor(0)
	case "enter":
		if match := m.selectedMatch(); match != nil {
			m.OpenDetail(match.Index)
		}
	case "n":
		return m.startNewNote()
	case "D", "delete":
		if match := m.selectedMatch(); match != nil {
			return m.startDelete(match.Index)
		}
	case "/":
		return m.startSearch()
	case "c":
		m.cycleCategory()
	case "C":
		picker := NewCategoryPickerModel(m.categoryOptions(), m.query.Category)
		m.picker = &picker
	case "esc":
		// clear search and category filter
		m.query = notes.Query{Category: notes.CategoryAll}
		m.refreshDisplay()
	}
	return m, nil
}

func (m NotesModel) handleDetailMode(msg tea.KeyMsg) (NotesModel, tea.Cmd) {
	n, ok := m.svc.Get(m.detailIndex)
	if !ok {
		m.CloseDetail()
		return m, nil
	}
	switch msg.String() {
	case "esc", "q", "backspace":
		m.CloseDetail()
	case "D", "delete":
		return m.startDelete(m.detailIndex)
	case "y":
		return m, copyContent(*n)
	}
	return m, nil
}

func (m NotesModel) handleSearchMode(msg tea.KeyMsg) (NotesModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// keep the query
		m.searchActive = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.searchActive = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.query.Search = ""
		m.refreshDisplay()
		return m, nil

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		// Live filter on every keystroke
		m.query.Search = m.searchInput.Value()
		m.cursor = 0
		m.scrollRow = 0
		m.refreshDisplay()
		return m, cmd
	}
}

// Actions

func (m NotesModel) startSearch() (NotesModel, tea.Cmd) {
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "type to filter..."
	m.searchInput.CharLimit = 256
	m.searchInput.Width = 40
	m.searchInput.SetValue(m.query.Search)
	m.searchActive = true
	cmd := m.searchInput.Focus()
	return m, cmd
}

func (m NotesModel) startNewNote() (NotesModel, tea.Cmd) {
	fallback := ""
	if m.query.Category != "" && m.query.Category != notes.CategoryAll {
		fallback = m.query.Category
	}
	width := m.width - 10
	if width > 72 {
		width = 72
	}
	m.form = NewNoteForm(m.categories, fallback, width)
	return m, m.form.Init()
}

// startDelete asks for confirmation before deleting the note at index
func (m NotesModel) startDelete(index int) (NotesModel, tea.Cmd) {
	n, ok := m.svc.Get(index)
	if !ok {
		return m, nil
	}
	m.pendingDeleteIndex = index
	m.confirmationModal = NewConfirmationModal("Delete this note?", n.Title, 50)
	return m, nil
}

// handleConfirmationResult processes the confirmation modal result
func (m NotesModel) handleConfirmationResult(msg ConfirmationResultMsg) (NotesModel, tea.Cmd) {
	m.confirmationModal = nil
	index := m.pendingDeleteIndex
	m.pendingDeleteIndex = -1

	if !msg.Confirmed || index < 0 {
		return m, nil
	}
	return m, func() tea.Msg {
		return messages.DeleteNoteMsg{Index: index}
	}
}

func (m NotesModel) handleFormResult(msg NoteFormResultMsg) (NotesModel, tea.Cmd) {
	if msg.Cancelled {
		m.form = nil
		return m, nil
	}
	draft := msg.Draft
	return m, func() tea.Msg {
		return messages.CreateNoteMsg{Draft: draft}
	}
}

func (m *NotesModel) categoryOptions() []string {
	return append([]string{notes.CategoryAll}, m.categories...)
}

func (m *NotesModel) cycleCategory() {
	options := m.categoryOptions()
	next := 0
	for i, c := range options {
		if c == m.query.Category {
			next = (i + 1) % len(options)
			break
		}
	}
	m.setCategory(options[next])
}

func (m *NotesModel) setCategory(category string) {
	m.query.Category = category
	m.cursor = 0
	m.scrollRow = 0
	m.refreshDisplay()
}

func (m *NotesModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *NotesModel) selectedMatch() *notes.Match {
	if m.cursor >= 0 && m.cursor < len(m.matches) {
		return &m.matches[m.cursor]
	}
	return nil
}

func (m *NotesModel) columns() int {
	cols := (m.width + cardGap) / (cardOuterWidth + cardGap)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// visibleRows returns how many card rows fit. The header uses 2 lines and the
// hints 1.
func (m *NotesModel) visibleRows() int {
	used := 3
	if m.searchActive {
		used++
	}
	rows := (m.height - used) / cardOuterHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureCursorVisible adjusts scrollRow so the cursor row is on screen.
func (m *NotesModel) ensureCursorVisible() {
	row := m.cursor / m.columns()
	visible := m.visibleRows()
	if m.scrollRow < 0 {
		m.scrollRow = 0
	}
	if row < m.scrollRow {
		m.scrollRow = row
	}
	if row >= m.scrollRow+visible {
		m.scrollRow = row - visible + 1
	}
}

// IsInModalState returns true if the view should receive every key, so
// global keys like q do not fire.
func (m *NotesModel) IsInModalState() bool {
	return m.form != nil || m.picker != nil || m.confirmationModal != nil || m.searchActive || m.detailIndex >= 0
}
