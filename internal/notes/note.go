package notes

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLen   = 28
	MaxContentLen = 500
	PreviewLen    = 120

	// CategoryAll is the category filter value that matches every note.
	CategoryAll = "all"

	// DateLayout is the MM/DD/YYYY creation stamp.
	DateLayout = "01/02/2006"
)

// Validation failures. The messages are shown to the user as-is.
var (
	ErrTitleLength     = errors.New("Title must be between 1 and 28 characters.")
	ErrContentLength   = errors.New("Content must be between 1 and 500 characters.")
	ErrMissingField    = errors.New("Please complete title, content and choose a category.")
	ErrUnknownCategory = errors.New("Please choose one of the available categories.")
)

// Note is a short user-authored text record.
type Note struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

// Draft holds raw form input before validation.
type Draft struct {
	Title    string
	Content  string
	Category string
}

// Normalize trims title and content the way the form submits them.
// Categories are lowercase everywhere, so the category is lowercased too.
func (d Draft) Normalize() Draft {
	return Draft{
		Title:    strings.TrimSpace(d.Title),
		Content:  strings.TrimSpace(d.Content),
		Category: strings.ToLower(strings.TrimSpace(d.Category)),
	}
}

// Validate checks a normalized draft. categories is the closed set; when it
// is empty any non-empty category is accepted.
func (d Draft) Validate(categories []string) error {
	titleLen := utf8.RuneCountInString(d.Title)
	if titleLen == 0 || titleLen > MaxTitleLen {
		return ErrTitleLength
	}

	contentLen := utf8.RuneCountInString(d.Content)
	if contentLen == 0 || contentLen > MaxContentLen {
		return ErrContentLength
	}

	if d.Title == "" || d.Content == "" || d.Category == "" {
		return ErrMissingField
	}

	if len(categories) > 0 && !containsCategory(categories, d.Category) {
		return ErrUnknownCategory
	}
	return nil
}

// FormatDate renders t as a creation stamp.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a creation stamp. It also accepts yyyy-MM-dd, the layout
// used in markdown frontmatter.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Preview returns the first PreviewLen characters of content, with "..."
// appended when it was cut.
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= PreviewLen {
		return content
	}
	runes := []rune(content)
	return string(runes[:PreviewLen]) + "..."
}

func containsCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
