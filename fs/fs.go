// Package fs implements file-backed diffcard services: card loading, live
// reload of card files, and an on-disk cache for generated descriptions.
package fs

import (
	"os"
	"path/filepath"
)

const appName = "diffcard"

// DefaultConfigDir returns the directory searched for the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/diffcard.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	return homeDir(".config")
}

// DefaultCacheDir returns the default cache directory for diffcard.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/diffcard,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	return homeDir(".cache")
}

// DefaultLogPath returns the default log file path.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state/diffcard.
func DefaultLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, appName+".log")
	}
	return filepath.Join(homeDir(filepath.Join(".local", "state")), appName+".log")
}

func homeDir(sub string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, sub, appName)
}
