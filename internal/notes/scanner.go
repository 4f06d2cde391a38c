package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"jotter/internal/logs"
)

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ParseNoteFile parses a markdown file as a Note. The title comes from the
// frontmatter, else the first level-1 heading, else the filename. The date
// comes from the frontmatter, else the filename, else the file's mtime.
// Category falls back to defaultCategory.
func ParseNoteFile(absPath, defaultCategory string) (Note, error) {
	raw, err := os.ReadFile(absPath)
	if err != nil {
		return Note{}, err
	}
	filename := filepath.Base(absPath)

	fm, body := splitFrontmatter(raw)
	body = strings.TrimSpace(body)

	n := Note{
		ID:       fm.ID,
		Title:    strings.TrimSpace(fm.Title),
		Category: strings.ToLower(strings.TrimSpace(fm.Category)),
	}

	if n.Title == "" {
		if heading, rest, ok := leadingHeading(body); ok {
			n.Title = heading
			body = rest
		}
	}
	if n.Title == "" {
		n.Title = titleFromFilename(filename)
	}
	n.Content = body

	if t, err := ParseDate(fm.Date); err == nil {
		n.Date = FormatDate(t)
	} else if match := datePattern.FindString(filename); match != "" {
		if t, err := ParseDate(match); err == nil {
			n.Date = FormatDate(t)
		}
	}
	if n.Date == "" {
		if info, err := os.Stat(absPath); err == nil {
			n.Date = FormatDate(info.ModTime())
		}
	}

	if n.Category == "" {
		n.Category = defaultCategory
	}

	return n, nil
}

// DefaultPattern selects the files ScanDir reads when no pattern is given.
const DefaultPattern = "*.md"

// ScanDir parses every file directly inside dir whose name matches the glob
// pattern, sorted by filename. Files that cannot be read are logged and
// skipped.
func ScanDir(dir, pattern, defaultCategory string) ([]Note, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !g.Match(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var result []Note
	for _, name := range names {
		n, err := ParseNoteFile(filepath.Join(dir, name), defaultCategory)
		if err != nil {
			logs.Logger.Printf("Skipping %s: %v", name, err)
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func splitFrontmatter(content []byte) (noteFrontmatter, string) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return noteFrontmatter{}, string(content)
	}

	var fmEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			fmEnd = i
			break
		}
	}

	if fmEnd == 0 {
		return noteFrontmatter{}, string(content)
	}

	body := string(bytes.Join(lines[fmEnd+1:], []byte("\n")))

	var fm noteFrontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:fmEnd], []byte("\n")), &fm); err != nil {
		return noteFrontmatter{}, body
	}
	return fm, body
}

// leadingHeading returns the text of a level-1 heading when it is the first
// block of markdown, plus the markdown that follows it.
func leadingHeading(markdown string) (string, string, bool) {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	first := doc.FirstChild()
	if first == nil || first.Kind() != ast.KindHeading {
		return "", markdown, false
	}
	heading := first.(*ast.Heading)
	if heading.Level != 1 {
		return "", markdown, false
	}

	title := strings.TrimSpace(string(heading.Text(source)))
	if title == "" {
		return "", markdown, false
	}

	rest := ""
	if lines := heading.Lines(); lines.Len() > 0 {
		rest = dropLine(markdown[lines.At(lines.Len()-1).Stop:])
		// setext underline
		if underline := strings.TrimSpace(firstLine(rest)); underline != "" && strings.Trim(underline, "=") == "" {
			rest = dropLine(rest)
		}
	}
	return title, strings.TrimSpace(rest), true
}

func firstLine(s string) string {
	if idx := strings.Index(s, "\n"); idx >= 0 {
		return s[:idx]
	}
	return s
}

func dropLine(s string) string {
	if idx := strings.Index(s, "\n"); idx >= 0 {
		return s[idx+1:]
	}
	return ""
}

func titleFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".md")

	// Strip leading date pattern (e.g. "2026-02-14-")
	if loc := datePattern.FindStringIndex(name); loc != nil && loc[0] == 0 {
		after := strings.TrimPrefix(name[loc[1]:], "-")
		if after != "" {
			name = after
		}
	}

	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.TrimSpace(name)

	if name == "" {
		return "Note"
	}
	return name
}
