package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"jotter/internal/cli"
	"jotter/internal/config"
	"jotter/internal/logs"
	"jotter/internal/notes/service"
	"jotter/internal/storage"
	"jotter/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags. Parsing stops at the first command so its own flags
	// are left for the cli package.
	flag.CommandLine.SetInterspersed(false)
	dirFlag := flag.StringP("dir", "d", "", "Data directory")
	backendFlag := flag.String("backend", "", "Storage backend: file or bolt")
	categoriesFlag := flag.String("categories", "", "Note categories (comma-separated)")
	flag.Parse()

	cliFlags := config.CLIFlags{
		DataDir:    *dirFlag,
		Backend:    *backendFlag,
		Categories: config.ParseCommaSeparated(*categoriesFlag),
	}

	// Load configuration
	cfg, err := config.Load(cliFlags)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		log.Printf("Failed to create data directory: %v", err)
		return 1
	}

	// Reinitialize logger
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	kv, err := openStorage(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open storage: %v\n", err)
		return 1
	}
	defer kv.Close()

	svc, err := service.NewNoteService(kv, cfg.StorageKey, cfg.Categories)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not initialize note service: %v\n", err)
		return 1
	}

	// Check for CLI subcommands
	if args := flag.Args(); len(args) > 0 {
		return cli.Run(args, svc)
	}

	// TUI mode
	logs.Logger.Println("Starting app in TUI mode")
	p := tea.NewProgram(tui.NewAppModel(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		return 1
	}
	return 0
}

func openStorage(cfg *config.Config) (storage.KV, error) {
	switch cfg.Backend {
	case config.BackendBolt:
		return storage.NewBoltKV(cfg.BoltPath())
	default:
		return storage.NewFileKV(cfg.DataDir)
	}
}
