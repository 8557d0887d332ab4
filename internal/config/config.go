// Package config handles loading and managing wren configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the wren configuration.
type Config struct {
	Mail MailConfig `toml:"mail"`
	UI   UIConfig   `toml:"ui"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// MailConfig holds mail storage configuration.
type MailConfig struct {
	StorageDir string `toml:"storage_dir"` // Thunderbird-style storage root
	Profile    string `toml:"profile"`     // Profile name from profiles.ini
}

// UIConfig holds list and screen behavior configuration.
type UIConfig struct {
	FetchBatch int `toml:"fetch_batch"` // Rows materialized per list fetch
}

// DefaultHome returns the default wren home directory.
// Respects WREN_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("WREN_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wren"
	}
	return filepath.Join(home, ".wren")
}

// Load reads the configuration from the specified file.
// If path is empty, uses the default location (~/.wren/config.toml).
func Load(path string) (*Config, error) {
	homeDir := DefaultHome()

	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		// Defaults
		Mail: MailConfig{
			StorageDir: "~/.thunderbird",
			Profile:    "default",
		},
		UI: UIConfig{
			FetchBatch: 10,
		},
	}

	// Config file is optional - use defaults if not present
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.Mail.StorageDir = expandPath(cfg.Mail.StorageDir)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Expand ~ in paths
	cfg.Mail.StorageDir = expandPath(cfg.Mail.StorageDir)
	if cfg.UI.FetchBatch <= 0 {
		cfg.UI.FetchBatch = 10
	}

	return cfg, nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
