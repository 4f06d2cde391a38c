package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jotter/internal/notes/service"
	"jotter/internal/storage"
)

type harness struct {
	svc     service.NoteService
	out     bytes.Buffer
	errOut  bytes.Buffer
	answers []bool
	asked   []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	svc, err := service.NewNoteService(storage.NewMemoryKV(), "notes", []string{"personal", "work"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &harness{svc: svc}
}

func (h *harness) run(args ...string) int {
	h.out.Reset()
	h.errOut.Reset()
	r := &runner{
		svc:    h.svc,
		out:    &h.out,
		errOut: &h.errOut,
		confirm: func(question string) (bool, error) {
			h.asked = append(h.asked, question)
			if len(h.answers) == 0 {
				return false, errors.New("no answer scripted")
			}
			answer := h.answers[0]
			h.answers = h.answers[1:]
			return answer, nil
		},
	}
	return r.run(args)
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	if code := h.run("add", "-t", "Groceries", "-c", "personal", "Milk,", "eggs,", "bread"); code != 0 {
		t.Fatalf("add exit %d: %s", code, h.errOut.String())
	}
	if !strings.Contains(h.out.String(), "Added: Groceries") {
		t.Errorf("unexpected add output %q", h.out.String())
	}

	if code := h.run("add", "--title", "Standup", "--category", "work", "Ship it"); code != 0 {
		t.Fatalf("add exit %d: %s", code, h.errOut.String())
	}

	if code := h.run("list"); code != 0 {
		t.Fatalf("list exit %d", code)
	}
	out := h.out.String()
	if strings.Index(out, "Standup") > strings.Index(out, "Groceries") {
		t.Errorf("expected newest first:\n%s", out)
	}
	if !strings.Contains(out, "Milk, eggs, bread") || !strings.Contains(out, "2 note(s)") {
		t.Errorf("unexpected list output:\n%s", out)
	}

	h.run("list", "-s", "MILK")
	if strings.Contains(h.out.String(), "Standup") || !strings.Contains(h.out.String(), "Groceries") {
		t.Errorf("search filter not applied:\n%s", h.out.String())
	}

	h.run("list", "-c", "work")
	if !strings.Contains(h.out.String(), "Standup") || strings.Contains(h.out.String(), "Groceries") {
		t.Errorf("category filter not applied:\n%s", h.out.String())
	}

	h.run("list", "-s", "zebra")
	if !strings.Contains(h.out.String(), "No notes found.") {
		t.Errorf("expected empty state, got:\n%s", h.out.String())
	}
}

func TestAdd_ValidationMessages(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "-c", "work", "content"}, "Title must be between 1 and 28 characters."},
		{[]string{"add", "-t", "title", "-c", "work"}, "Content must be between 1 and 500 characters."},
		{[]string{"add", "-t", "title", "content"}, "Please complete title, content and choose a category."},
		{[]string{"add", "-t", "title", "-c", "shopping", "content"}, "personal, work"},
	}

	for _, tt := range tests {
		if code := h.run(tt.args...); code != 1 {
			t.Errorf("%v: expected exit 1, got %d", tt.args, code)
		}
		if !strings.Contains(h.errOut.String(), tt.want) {
			t.Errorf("%v: expected %q in %q", tt.args, tt.want, h.errOut.String())
		}
	}
	if len(h.svc.List()) != 0 {
		t.Errorf("rejected adds changed the list")
	}
}

func TestDelete_Confirmation(t *testing.T) {
	h := newHarness(t)
	h.run("add", "-t", "Groceries", "-c", "personal", "Milk")

	h.answers = []bool{false}
	if code := h.run("delete", "0"); code != 0 {
		t.Fatalf("delete exit %d: %s", code, h.errOut.String())
	}
	if len(h.svc.List()) != 1 || !strings.Contains(h.out.String(), "Cancelled.") {
		t.Fatalf("declined delete removed the note")
	}

	h.answers = []bool{true}
	if code := h.run("delete", "0"); code != 0 {
		t.Fatalf("delete exit %d: %s", code, h.errOut.String())
	}
	if len(h.svc.List()) != 0 {
		t.Fatalf("confirmed delete kept the note")
	}
	if len(h.asked) != 2 || h.asked[0] != "Delete this note?" {
		t.Errorf("unexpected prompts %v", h.asked)
	}
}

func TestDelete_ByIDWithoutPrompt(t *testing.T) {
	h := newHarness(t)
	h.run("add", "-t", "first", "-c", "work", "one")
	h.run("add", "-t", "second", "-c", "work", "two")
	id := h.svc.List()[1].ID

	if code := h.run("delete", "-y", id); code != 0 {
		t.Fatalf("delete exit %d: %s", code, h.errOut.String())
	}
	list := h.svc.List()
	if len(list) != 1 || list[0].Title != "second" {
		t.Errorf("unexpected list %+v", list)
	}
	if len(h.asked) != 0 {
		t.Errorf("expected no prompt with -y")
	}
}

func TestDelete_UnknownIndex(t *testing.T) {
	h := newHarness(t)
	if code := h.run("delete", "3"); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	long := strings.Repeat("x", 200)
	h.run("add", "-t", "Long", "-c", "work", long)

	if code := h.run("show", "0"); code != 0 {
		t.Fatalf("show exit %d: %s", code, h.errOut.String())
	}
	if !strings.Contains(h.out.String(), long) {
		t.Errorf("expected full content in show output")
	}
}

func TestExportImport(t *testing.T) {
	h := newHarness(t)
	h.run("add", "-t", "Groceries", "-c", "personal", "Milk")
	h.run("add", "-t", "Standup", "-c", "work", "Ship it")

	dir := filepath.Join(t.TempDir(), "export")
	if code := h.run("export", dir); code != 0 {
		t.Fatalf("export exit %d: %s", code, h.errOut.String())
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 2 {
		t.Fatalf("expected 2 exported files, got %v (%v)", entries, err)
	}

	other := newHarness(t)
	if code := other.run("import", dir); code != 0 {
		t.Fatalf("import exit %d: %s", code, other.errOut.String())
	}
	if !strings.Contains(other.out.String(), "Imported 2 of 2") {
		t.Errorf("unexpected import output %q", other.out.String())
	}

	// importing the same files again adds nothing
	other.run("import", dir)
	if len(other.svc.List()) != 2 {
		t.Errorf("expected re-import to be idempotent, got %d notes", len(other.svc.List()))
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	if code := h.run("frobnicate"); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if code := h.run("help"); code != 0 {
		t.Errorf("expected exit 0 for help, got %d", code)
	}
}

func TestImport_Pattern(t *testing.T) {
	h := newHarness(t)
	h.run("add", "-t", "Groceries", "-c", "personal", "Milk")
	h.run("add", "-t", "Standup", "-c", "work", "Ship it")

	dir := t.TempDir()
	if code := h.run("export", dir); code != 0 {
		t.Fatalf("export exit %d: %s", code, h.errOut.String())
	}

	other := newHarness(t)
	if code := other.run("import", "-p", "*-standup.md", dir); code != 0 {
		t.Fatalf("import exit %d: %s", code, other.errOut.String())
	}
	list := other.svc.List()
	if len(list) != 1 || list[0].Title != "Standup" {
		t.Errorf("expected only Standup imported, got %+v", list)
	}

	if code := other.run("import", "-p", "[", dir); code != 1 {
		t.Errorf("expected exit 1 for an invalid pattern, got %d", code)
	}
}

func TestCategories(t *testing.T) {
	h := newHarness(t)
	if code := h.run("categories"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got := h.out.String(); got != "personal\nwork\n" {
		t.Errorf("unexpected categories output %q", got)
	}
}

func TestAdd_CategoryIsCaseInsensitive(t *testing.T) {
	h := newHarness(t)
	if code := h.run("add", "-t", "Standup", "-c", "Work", "Ship it"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, h.errOut.String())
	}
	if got := h.svc.List()[0].Category; got != "work" {
		t.Errorf("expected category work, got %q", got)
	}
}

func TestBadFlagIsReported(t *testing.T) {
	h := newHarness(t)
	h.run("add", "-t", "Groceries", "-c", "personal", "Milk")

	tests := [][]string{
		{"delete", "-y", "-1"},
		{"add", "--colour", "red"},
		{"list", "--nope"},
		{"import", "-x", "dir"},
	}
	for _, args := range tests {
		if code := h.run(args...); code != 1 {
			t.Errorf("%v: expected exit 1, got %d", args, code)
		}
		if !strings.HasPrefix(h.errOut.String(), "Error: ") {
			t.Errorf("%v: expected an error on stderr, got %q", args, h.errOut.String())
		}
	}
	if len(h.svc.List()) != 1 {
		t.Error("a bad flag must not change the list")
	}
}
