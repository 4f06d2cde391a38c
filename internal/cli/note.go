package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"jotter/internal/notes"
)

func (r *runner) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(r.errOut)
	return fs
}

// parseFlags parses args into fs and reports a parse failure on stderr.
func (r *runner) parseFlags(fs *pflag.FlagSet, args []string) bool {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return false
	}
	return true
}

func (r *runner) runAdd(args []string) int {
	fs := r.newFlagSet("add")
	title := fs.StringP("title", "t", "", "Note title (1-28 characters)")
	category := fs.StringP("category", "c", "", "Note category")

	if !r.parseFlags(fs, args) {
		return 1
	}

	content := strings.Join(fs.Args(), " ")
	if *category == "" {
		if cats := r.svc.Categories(); len(cats) == 1 {
			*category = cats[0]
		}
	}

	n, err := r.svc.Create(*title, content, *category)
	if err != nil {
		if errors.Is(err, notes.ErrUnknownCategory) {
			fmt.Fprintf(r.errOut, "Error: %v (%s)\n", err, strings.Join(r.svc.Categories(), ", "))
			return 1
		}
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(r.out, "Added: %s\n", n.Title)
	fmt.Fprintf(r.out, "ID: %s\n", n.ID)
	return 0
}

func (r *runner) runList(args []string) int {
	fs := r.newFlagSet("list")
	search := fs.StringP("search", "s", "", "Only notes whose title or content contains this text")
	category := fs.StringP("category", "c", notes.CategoryAll, "Only notes in this category")

	if !r.parseFlags(fs, args) {
		return 1
	}

	matches := r.svc.Filter(notes.Query{Search: *search, Category: *category})
	if len(matches) == 0 {
		fmt.Fprintln(r.out, "No notes found.")
		return 0
	}

	for _, m := range matches {
		printCard(r.out, m)
	}

	fmt.Fprintf(r.out, "%d note(s)\n", len(matches))
	return 0
}

func (r *runner) runShow(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(r.errOut, "Error: note index or ID required")
		fmt.Fprintln(r.errOut, "Usage: jotter show <index|id>")
		return 1
	}

	index, n, err := r.svc.Resolve(args[0])
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(r.out, "[%d] %s\n", index, n.Title)
	fmt.Fprintf(r.out, "%s | %s | %s\n\n", n.Category, n.Date, n.ID)
	fmt.Fprintln(r.out, n.Content)
	return 0
}

func (r *runner) runDelete(args []string) int {
	fs := r.newFlagSet("delete")
	yes := fs.BoolP("yes", "y", false, "Do not ask for confirmation")

	if !r.parseFlags(fs, args) {
		return 1
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(r.errOut, "Error: note index or ID required")
		fmt.Fprintln(r.errOut, "Usage: jotter delete <index|id> [-y]")
		return 1
	}

	index, n, err := r.svc.Resolve(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return 1
	}

	if !*yes {
		fmt.Fprintf(r.out, "%s (%s, %s)\n", n.Title, n.Category, n.Date)
		ok, err := r.confirm("Delete this note?")
		if err != nil {
			fmt.Fprintf(r.errOut, "Error: %v\n", err)
			return 1
		}
		if !ok {
			fmt.Fprintln(r.out, "Cancelled.")
			return 0
		}
	}

	if _, err := r.svc.Delete(index); err != nil {
		fmt.Fprintf(r.errOut, "Error deleting note: %v\n", err)
		return 1
	}

	fmt.Fprintf(r.out, "Deleted: %s\n", n.Title)
	return 0
}

func (r *runner) runCategories() int {
	for _, c := range r.svc.Categories() {
		fmt.Fprintln(r.out, c)
	}
	return 0
}

func (r *runner) runExport(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(r.errOut, "Error: export directory required")
		fmt.Fprintln(r.errOut, "Usage: jotter export <dir>")
		return 1
	}

	count, err := notes.ExportDir(r.svc.List(), args[0])
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(r.out, "Exported %d note(s) to %s\n", count, args[0])
	return 0
}

func (r *runner) runImport(args []string) int {
	fs := r.newFlagSet("import")
	category := fs.StringP("category", "c", "", "Category for notes that do not name one")
	pattern := fs.StringP("pattern", "p", notes.DefaultPattern, "Glob for the file names to read")

	if !r.parseFlags(fs, args) {
		return 1
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(r.errOut, "Error: import directory required")
		fmt.Fprintln(r.errOut, "Usage: jotter import <dir> [-c category] [-p pattern]")
		return 1
	}

	defaultCategory := *category
	if defaultCategory == "" {
		if cats := r.svc.Categories(); len(cats) > 0 {
			defaultCategory = cats[0]
		}
	}

	scanned, err := notes.ScanDir(fs.Arg(0), *pattern, defaultCategory)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error: %v\n", err)
		return 1
	}

	added, err := r.svc.Import(scanned)
	if err != nil {
		fmt.Fprintf(r.errOut, "Error importing notes: %v\n", err)
		return 1
	}

	fmt.Fprintf(r.out, "Imported %d of %d note(s)\n", added, len(scanned))
	return 0
}

func printCard(w io.Writer, m notes.Match) {
	id := m.Note.ID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(w, "[%d] %s  (%s)\n", m.Index, m.Note.Title, id)
	fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(notes.Preview(m.Note.Content), "\n", " "))
	fmt.Fprintf(w, "    %s | %s\n\n", m.Note.Category, m.Note.Date)
}
