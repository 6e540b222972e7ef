// Package paths provides a single source of truth for baps3 file paths.
// All path helpers honor environment variable overrides for isolated testing.
//
// Path resolution precedence:
//  1. Specific env vars (BAPS3_CONFIG) take highest priority
//  2. BAPS3_DIR sets the base directory (derives config, log and history)
//  3. Default behavior (~/.baps3, ~/.config/baps3) when no env vars are set
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment variable names for path overrides.
const (
	// EnvBaseDir is the base directory override (e.g., /tmp/baps3-test).
	EnvBaseDir = "BAPS3_DIR"

	// EnvConfigPath overrides the config file path directly.
	EnvConfigPath = "BAPS3_CONFIG"
)

// BaseDir returns the baps3 base directory (~/.baps3 by default).
// Honors BAPS3_DIR.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvBaseDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".baps3"), nil
}

// ConfigDir returns the config directory (~/.config/baps3 by default).
// When BAPS3_DIR is set, returns BAPS3_DIR/config instead.
func ConfigDir() (string, error) {
	if dir := os.Getenv(EnvBaseDir); dir != "" {
		return filepath.Join(dir, "config"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "baps3"), nil
}

// ConfigPath returns the path to the config file.
// Precedence: BAPS3_CONFIG > ConfigDir()/config.toml
func ConfigPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the diagnostic log path (~/.baps3/baps3.log by default).
func LogPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "baps3.log"), nil
}

// HistoryPath returns the interactive client's history file
// (~/.baps3/history by default).
func HistoryPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "history"), nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
// Other paths are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
