package notes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseNoteFile_Frontmatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "whatever.md", "---\ntitle: Groceries\ncategory: Personal\ndate: 2026-02-14\n---\n\nMilk, eggs, bread\n")

	n, err := ParseNoteFile(path, "work")
	if err != nil {
		t.Fatalf("ParseNoteFile: %v", err)
	}
	want := Note{Title: "Groceries", Content: "Milk, eggs, bread", Category: "personal", Date: "02/14/2026"}
	if diff := cmp.Diff(want, n); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNoteFile_HeadingTitle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "2026-01-05-ignored.md", "# Meeting notes\n\nShip it on Friday.\n")

	n, err := ParseNoteFile(path, "work")
	if err != nil {
		t.Fatalf("ParseNoteFile: %v", err)
	}
	if n.Title != "Meeting notes" {
		t.Errorf("expected heading title, got %q", n.Title)
	}
	if n.Content != "Ship it on Friday." {
		t.Errorf("expected heading stripped from content, got %q", n.Content)
	}
	if n.Date != "01/05/2026" {
		t.Errorf("expected filename date, got %q", n.Date)
	}
	if n.Category != "work" {
		t.Errorf("expected default category, got %q", n.Category)
	}
}

func TestParseNoteFile_FilenameTitle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "2026-01-05-weekend_plans.md", "## not a title\n\nhike\n")

	n, err := ParseNoteFile(path, "personal")
	if err != nil {
		t.Fatalf("ParseNoteFile: %v", err)
	}
	if n.Title != "weekend plans" {
		t.Errorf("expected title from filename, got %q", n.Title)
	}
}

func TestExportThenScan(t *testing.T) {
	dir := t.TempDir()
	list := []Note{
		{ID: "a1", Title: "Groceries", Content: "Milk, eggs, bread", Category: "personal", Date: "02/14/2026"},
		{ID: "b2", Title: "Groceries", Content: "Second list", Category: "personal", Date: "02/14/2026"},
		{ID: "c3", Title: "Standup", Content: "# not the title\n\nnotes", Category: "work", Date: "01/01/2026"},
	}

	n, err := ExportDir(list, dir)
	if err != nil {
		t.Fatalf("ExportDir: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 files, got %d", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "2026-02-14-groceries-2.md")); err != nil {
		t.Errorf("expected de-duplicated filename: %v", err)
	}

	scanned, err := ScanDir(dir, "", "personal")
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	byID := make(map[string]Note)
	for _, s := range scanned {
		byID[s.ID] = s
	}
	for _, want := range list {
		if diff := cmp.Diff(want, byID[want.ID]); diff != "" {
			t.Errorf("note %s mismatch (-want +got):\n%s", want.ID, diff)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Groceries & Errands!": "groceries-errands",
		"  spaced  out ":       "spaced-out",
		"snake_case":           "snake-case",
		"!!!":                  "note",
	}
	for in, want := range tests {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitleFromFilename(t *testing.T) {
	tests := map[string]string{
		"2026-02-14-my-note.md": "my note",
		"plain_name.md":         "plain name",
		"2026-02-14.md":         "2026 02 14",
	}
	for in, want := range tests {
		if got := titleFromFilename(in); got != want {
			t.Errorf("titleFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestScanDir_Pattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-01-05-standup.md", "# Standup\n\nShip it")
	writeFile(t, dir, "2026-01-06-groceries.md", "# Groceries\n\nMilk")
	writeFile(t, dir, "readme.txt", "not a note")

	all, err := ScanDir(dir, "", "work")
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 markdown notes, got %d", len(all))
	}

	some, err := ScanDir(dir, "*-standup.md", "work")
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(some) != 1 || some[0].Title != "Standup" {
		t.Errorf("expected only Standup, got %+v", some)
	}

	if _, err := ScanDir(dir, "[", "work"); err == nil {
		t.Error("expected an error for an invalid pattern")
	}
}
