package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"jotter/internal/logs"
	"jotter/internal/notes"
	"jotter/internal/storage"
)

// ErrNoteNotFound is returned by FindByID and Resolve when nothing matches.
var ErrNoteNotFound = errors.New("note not found")

// NoteService owns the ordered note list and its persisted mirror.
type NoteService interface {
	List() []notes.Note
	Get(index int) (*notes.Note, bool)
	FindByID(id string) (int, *notes.Note, error)
	Resolve(ref string) (int, *notes.Note, error)
	Filter(q notes.Query) []notes.Match
	Create(title, content, category string) (*notes.Note, error)
	Delete(index int) (bool, error)
	Import(items []notes.Note) (int, error)
	Categories() []string
	Reload() error
}

type noteServiceImpl struct {
	kv         storage.KV
	key        string
	categories []string
	notes      []notes.Note
	now        func() time.Time
}

// Option configures a NoteService.
type Option func(*noteServiceImpl)

// WithClock overrides the clock used to stamp new notes.
func WithClock(now func() time.Time) Option {
	return func(s *noteServiceImpl) {
		s.now = now
	}
}

// NewNoteService loads the list stored under key. A missing or unreadable
// value starts an empty list.
func NewNoteService(kv storage.KV, key string, categories []string, opts ...Option) (NoteService, error) {
	if kv == nil {
		return nil, errors.New("storage is required")
	}
	if key == "" {
		return nil, errors.New("storage key is required")
	}
	svc := &noteServiceImpl{
		kv:         kv,
		key:        key,
		categories: append([]string{}, categories...),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.Reload(); err != nil {
		return nil, err
	}
	return svc, nil
}

// Reload replaces the in-memory list with the persisted one. Read and decode
// failures are logged and leave an empty list.
func (s *noteServiceImpl) Reload() error {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		logs.Logger.Printf("Could not read %q, starting empty: %v", s.key, err)
		s.notes = []notes.Note{}
		return nil
	}
	if !ok {
		s.notes = []notes.Note{}
		return nil
	}

	list, err := notes.Decode(raw)
	if err != nil {
		logs.Logger.Printf("Ignoring stored notes: %v", err)
	}
	assigned := false
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = uuid.NewString()
			assigned = true
		}
	}
	s.notes = list
	if assigned {
		// keep ids stable across runs
		if err := s.persist(list); err != nil {
			logs.Logger.Printf("Could not store note ids: %v", err)
		}
	}
	return nil
}

func (s *noteServiceImpl) List() []notes.Note {
	out := make([]notes.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *noteServiceImpl) Get(index int) (*notes.Note, bool) {
	if index < 0 || index >= len(s.notes) {
		return nil, false
	}
	n := s.notes[index]
	return &n, true
}

// FindByID matches an exact id or a unique prefix of at least 4 characters.
func (s *noteServiceImpl) FindByID(id string) (int, *notes.Note, error) {
	id = strings.TrimSpace(id)
	match := -1
	for i, n := range s.notes {
		if n.ID == id {
			found := n
			return i, &found, nil
		}
		if len(id) >= 4 && strings.HasPrefix(n.ID, id) {
			if match >= 0 {
				return -1, nil, fmt.Errorf("multiple notes match ID '%s', please be more specific", id)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	n := s.notes[match]
	return match, &n, nil
}

// Resolve accepts either a list index or an id.
func (s *noteServiceImpl) Resolve(ref string) (int, *notes.Note, error) {
	if index, err := strconv.Atoi(ref); err == nil {
		n, ok := s.Get(index)
		if !ok {
			return -1, nil, fmt.Errorf("%w: no note at index %d", ErrNoteNotFound, index)
		}
		return index, n, nil
	}
	return s.FindByID(ref)
}

func (s *noteServiceImpl) Filter(q notes.Query) []notes.Match {
	return notes.Apply(s.notes, q)
}

func (s *noteServiceImpl) Categories() []string {
	return append([]string{}, s.categories...)
}

// Create validates the input and prepends a new note stamped with today's date.
func (s *noteServiceImpl) Create(title, content, category string) (*notes.Note, error) {
	draft := notes.Draft{Title: title, Content: content, Category: category}.Normalize()
	if err := draft.Validate(s.categories); err != nil {
		return nil, err
	}

	n := notes.Note{
		ID:       uuid.NewString(),
		Title:    draft.Title,
		Content:  draft.Content,
		Category: draft.Category,
		Date:     notes.FormatDate(s.now()),
	}

	updated := make([]notes.Note, 0, len(s.notes)+1)
	updated = append(updated, n)
	updated = append(updated, s.notes...)
	if err := s.persist(updated); err != nil {
		return nil, err
	}
	logs.Logger.Printf("Created note %s (%s)", n.ID, n.Category)
	return &n, nil
}

// Delete removes the note at index. An out-of-range index is a no-op.
func (s *noteServiceImpl) Delete(index int) (bool, error) {
	if index < 0 || index >= len(s.notes) {
		return false, nil
	}

	removed := s.notes[index]
	updated := make([]notes.Note, 0, len(s.notes)-1)
	updated = append(updated, s.notes[:index]...)
	updated = append(updated, s.notes[index+1:]...)
	if err := s.persist(updated); err != nil {
		return false, err
	}
	logs.Logger.Printf("Deleted note %s", removed.ID)
	return true, nil
}

// Import prepends the valid notes from items, keeping their order and dates.
// Invalid notes and notes whose id is already present are skipped. It
// returns how many were added.
func (s *noteServiceImpl) Import(items []notes.Note) (int, error) {
	existing := make(map[string]bool, len(s.notes))
	for _, n := range s.notes {
		existing[n.ID] = true
	}

	var accepted []notes.Note
	for _, item := range items {
		draft := notes.Draft{Title: item.Title, Content: item.Content, Category: item.Category}.Normalize()
		if err := draft.Validate(s.categories); err != nil {
			logs.Logger.Printf("Skipping imported note %q: %v", item.Title, err)
			continue
		}
		n := notes.Note{
			ID:       item.ID,
			Title:    draft.Title,
			Content:  draft.Content,
			Category: draft.Category,
			Date:     item.Date,
		}
		if existing[n.ID] {
			logs.Logger.Printf("Skipping imported note %s: already present", n.ID)
			continue
		}
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if _, err := notes.ParseDate(n.Date); err != nil {
			n.Date = notes.FormatDate(s.now())
		}
		existing[n.ID] = true
		accepted = append(accepted, n)
	}

	if len(accepted) == 0 {
		return 0, nil
	}

	updated := make([]notes.Note, 0, len(s.notes)+len(accepted))
	updated = append(updated, accepted...)
	updated = append(updated, s.notes...)
	if err := s.persist(updated); err != nil {
		return 0, err
	}
	return len(accepted), nil
}

// persist writes list and, only once that succeeded, makes it current.
func (s *noteServiceImpl) persist(list []notes.Note) error {
	raw, err := notes.Encode(list)
	if err != nil {
		return fmt.Errorf("error encoding notes: %w", err)
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		return fmt.Errorf("error saving notes: %w", err)
	}
	s.notes = list
	return nil
}
