package config

import (
	"os"
	"testing"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("JOTTER_DIR", "")
	t.Setenv("JOTTER_BACKEND", "")
	t.Setenv("JOTTER_CATEGORIES", "")
	return home
}

func TestLoad_Default(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != home+"/.local/share/jotter" {
		t.Errorf("unexpected default data dir %q", cfg.DataDir)
	}
	if cfg.Backend != BackendFile {
		t.Errorf("expected backend %q, got %q", BackendFile, cfg.Backend)
	}
	if cfg.StorageKey != "notes" {
		t.Errorf("expected storage key 'notes', got %q", cfg.StorageKey)
	}
	if len(cfg.Categories) != len(DefaultCategories) {
		t.Errorf("expected %d categories, got %d", len(DefaultCategories), len(cfg.Categories))
	}
}

func TestLoad_EnvVar(t *testing.T) {
	isolateHome(t)
	t.Setenv("JOTTER_DIR", "/tmp/jotter-env")
	t.Setenv("JOTTER_BACKEND", "bolt")
	t.Setenv("JOTTER_CATEGORIES", "home, Work ,home")

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != "/tmp/jotter-env" {
		t.Errorf("expected /tmp/jotter-env, got %q", cfg.DataDir)
	}
	if cfg.Backend != BackendBolt {
		t.Errorf("expected bolt backend, got %q", cfg.Backend)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[0] != "home" || cfg.Categories[1] != "work" {
		t.Errorf("unexpected categories %v", cfg.Categories)
	}
}

func TestLoad_CLIFlags(t *testing.T) {
	isolateHome(t)
	t.Setenv("JOTTER_DIR", "/tmp/env-dir")

	cfg, err := Load(CLIFlags{DataDir: "/tmp/cli-dir", Categories: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CLI flags should override env vars
	if cfg.DataDir != "/tmp/cli-dir" {
		t.Errorf("expected /tmp/cli-dir, got %q", cfg.DataDir)
	}
	if len(cfg.Categories) != 2 {
		t.Errorf("expected 2 categories, got %v", cfg.Categories)
	}
}

func TestLoad_ConfigFileWithComments(t *testing.T) {
	home := isolateHome(t)
	if err := os.MkdirAll(home+"/.config/jotter", 0755); err != nil {
		t.Fatal(err)
	}
	content := `{
  // where notes live
  "data_dir": "~/notes-data",
  "storage_key": "my-notes",
  "categories": ["journal", "todo",],
}`
	if err := os.WriteFile(home+"/.config/jotter/config.json", []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(CLIFlags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DataDir != home+"/notes-data" {
		t.Errorf("expected expanded data dir, got %q", cfg.DataDir)
	}
	if cfg.StorageKey != "my-notes" {
		t.Errorf("expected storage key my-notes, got %q", cfg.StorageKey)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[0] != "journal" {
		t.Errorf("unexpected categories %v", cfg.Categories)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	isolateHome(t)

	if _, err := Load(CLIFlags{Backend: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoad_AllIsNotACategory(t *testing.T) {
	isolateHome(t)

	if _, err := Load(CLIFlags{Categories: []string{"all"}}); err == nil {
		t.Fatal("expected error when only the reserved 'all' category is given")
	}
}

func TestEnsureConfigFile(t *testing.T) {
	home := isolateHome(t)

	if err := EnsureConfigFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	settings, err := loadConfigFile(home + "/.config/jotter/config.json")
	if err != nil {
		t.Fatalf("reading generated config: %v", err)
	}
	if settings.Backend != BackendFile {
		t.Errorf("expected file backend in generated config, got %q", settings.Backend)
	}
}

func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"", 0},
		{"a", 1},
		{"a,b,c", 3},
		{" a , b , c ", 3},
		{"a,,b", 2},
	}

	for _, tt := range tests {
		result := ParseCommaSeparated(tt.input)
		if len(result) != tt.expected {
			t.Errorf("ParseCommaSeparated(%q): expected %d items, got %d", tt.input, tt.expected, len(result))
		}
	}
}
