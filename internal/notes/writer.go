package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

var multiDash = regexp.MustCompile(`-+`)

type noteFrontmatter struct {
	ID       string `yaml:"id,omitempty"`
	Title    string `yaml:"title,omitempty"`
	Category string `yaml:"category,omitempty"`
	Date     string `yaml:"date,omitempty"`
}

// WriteMarkdown writes n to path as markdown with YAML frontmatter.
func WriteMarkdown(n Note, path string) error {
	var buf bytes.Buffer

	fm := noteFrontmatter{
		ID:       n.ID,
		Title:    n.Title,
		Category: n.Category,
	}
	if t, err := ParseDate(n.Date); err == nil {
		fm.Date = t.Format("2006-01-02")
	}

	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}

	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")
	buf.WriteString(n.Content)
	buf.WriteString("\n")

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ExportDir writes every note in list to dir, one file per note, and returns
// the number of files written.
func ExportDir(list []Note, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("error creating export dir: %w", err)
	}
	for i, n := range list {
		name := uniqueFilename(exportBase(n), dir)
		if err := WriteMarkdown(n, filepath.Join(dir, name)); err != nil {
			return i, fmt.Errorf("error writing %s: %w", name, err)
		}
	}
	return len(list), nil
}

// exportBase is "yyyy-MM-dd-slug", so the date and title survive even if the
// frontmatter is stripped.
func exportBase(n Note) string {
	slug := slugify(n.Title)
	if t, err := ParseDate(n.Date); err == nil {
		return t.Format("2006-01-02") + "-" + slug
	}
	return slug
}

// slugify converts a title to lowercase kebab-case
// "Groceries & Errands!" -> "groceries-errands"
func slugify(title string) string {
	s := strings.ToLower(title)

	var result strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			result.WriteRune('-')
		}
	}

	s = multiDash.ReplaceAllString(result.String(), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "note"
	}
	return s
}

// uniqueFilename returns base.md, or base-2.md, base-3.md... if taken.
func uniqueFilename(base, dir string) string {
	candidate := base + ".md"
	if !fileExists(filepath.Join(dir, candidate)) {
		return candidate
	}
	for i := 2; ; i++ {
		candidate = base + "-" + strconv.Itoa(i) + ".md"
		if !fileExists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
