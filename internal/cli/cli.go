package cli

import (
	"fmt"
	"io"
	"os"

	"jotter/internal/notes/service"
)

// ConfirmFunc asks a yes/no question and reports the answer.
type ConfirmFunc func(question string) (bool, error)

type runner struct {
	svc     service.NoteService
	out     io.Writer
	errOut  io.Writer
	confirm ConfirmFunc
}

// Run executes the CLI with the given arguments and returns the exit code.
func Run(args []string, svc service.NoteService) int {
	r := &runner{
		svc:     svc,
		out:     os.Stdout,
		errOut:  os.Stderr,
		confirm: promptConfirm,
	}
	return r.run(args)
}

func (r *runner) run(args []string) int {
	if len(args) == 0 {
		r.printUsage()
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "add", "a":
		return r.runAdd(cmdArgs)
	case "list", "ls", "l":
		return r.runList(cmdArgs)
	case "show", "s":
		return r.runShow(cmdArgs)
	case "delete", "rm", "del":
		return r.runDelete(cmdArgs)
	case "categories":
		return r.runCategories()
	case "export":
		return r.runExport(cmdArgs)
	case "import":
		return r.runImport(cmdArgs)
	case "help", "-h", "--help":
		r.printUsage()
		return 0
	default:
		fmt.Fprintf(r.errOut, "Unknown command: %s\n", command)
		r.printUsage()
		return 1
	}
}

func (r *runner) printUsage() {
	fmt.Fprintln(r.out, `jotter - Quick notes for the terminal

Usage: jotter [flags] [command] [arguments]

Commands:
  add, a       Add a note
               jotter add -t "Groceries" -c personal "Milk, eggs, bread"

  list, ls, l  List notes, newest first
               jotter list                 # all notes
               jotter list -s milk         # search title and content
               jotter list -c work         # one category

  show, s      Show one note in full
               jotter show <index|id>

  delete, rm   Delete a note (asks for confirmation)
               jotter delete <index|id> [-y]

  categories   List the available categories
  export       Write every note as markdown into a directory
               jotter export <dir>
  import       Read markdown notes from a directory
               jotter import <dir> [-c category] [-p pattern]
  help         Show this help message

Flags:
  -d, --dir <path>          Data directory
      --backend <name>      Storage backend: file, bolt
      --categories <list>   Categories (comma-separated)

Running jotter without a command launches the interactive TUI.`)
}
