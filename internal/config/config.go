package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

const (
	BackendFile = "file"
	BackendBolt = "bolt"

	defaultStorageKey = "notes"
)

// DefaultCategories is the closed category set used when nothing is configured.
var DefaultCategories = []string{"personal", "work", "study", "ideas"}

// Config holds the unified application configuration
type Config struct {
	DataDir    string   `json:"data_dir"`
	Backend    string   `json:"backend"`
	StorageKey string   `json:"storage_key"`
	Categories []string `json:"categories"`
}

// Settings represents the config file structure
type Settings struct {
	DataDir    string   `json:"data_dir,omitempty"`
	Backend    string   `json:"backend,omitempty"`
	StorageKey string   `json:"storage_key,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	DataDir    string
	Backend    string
	Categories []string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Backend:    BackendFile,
		StorageKey: defaultStorageKey,
		Categories: append([]string{}, DefaultCategories...),
	}

	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			applySettings(cfg, fileConfig)
		}
	}

	// Priority 2: Environment variables override config file
	if envDir := os.Getenv("JOTTER_DIR"); envDir != "" {
		cfg.DataDir = expandPath(envDir)
	}
	if envBackend := os.Getenv("JOTTER_BACKEND"); envBackend != "" {
		cfg.Backend = envBackend
	}
	if envCategories := ParseCommaSeparated(os.Getenv("JOTTER_CATEGORIES")); len(envCategories) > 0 {
		cfg.Categories = envCategories
	}

	// Priority 1: CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.Backend != "" {
		cfg.Backend = flags.Backend
	}
	if len(flags.Categories) > 0 {
		cfg.Categories = flags.Categories
	}

	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend != BackendFile && cfg.Backend != BackendBolt {
		return nil, fmt.Errorf("unknown storage backend %q (want %q or %q)", cfg.Backend, BackendFile, BackendBolt)
	}

	cfg.Categories = normalizeCategories(cfg.Categories)
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("at least one category is required")
	}

	return cfg, nil
}

func applySettings(cfg *Config, s *Settings) {
	if s.DataDir != "" {
		cfg.DataDir = expandPath(s.DataDir)
	}
	if s.Backend != "" {
		cfg.Backend = s.Backend
	}
	if s.StorageKey != "" {
		cfg.StorageKey = s.StorageKey
	}
	if len(s.Categories) > 0 {
		cfg.Categories = s.Categories
	}
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "jotter"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "jotter", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file. Comments and
// trailing commas are allowed.
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseSettings(data)
}

func parseSettings(data []byte) (*Settings, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(standardized, &settings); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return &settings, nil
}

// EnsureDataDir ensures the data directory exists
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// BoltPath returns the path of the bbolt database file
func (c *Config) BoltPath() string {
	return filepath.Join(c.DataDir, "jotter.db")
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	settings := Settings{
		DataDir:    defaultDir,
		Backend:    BackendFile,
		StorageKey: defaultStorageKey,
		Categories: DefaultCategories,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ParseCommaSeparated splits a comma-separated string into a slice
func ParseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// normalizeCategories lowercases, trims and de-duplicates categories. "all"
// is reserved for the filter and dropped.
func normalizeCategories(categories []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || c == "all" || seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, c)
	}
	return result
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
