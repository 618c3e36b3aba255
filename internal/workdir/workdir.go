// Package workdir locates the directory holding jailu's local data.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root returns the default data directory:
//
//	$XDG_CONFIG_HOME/jailu (or the platform equivalent)
func Root() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(base, "jailu"), nil
}

// Resolve returns dir when set, the default root otherwise.
func Resolve(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return Root()
}

// Prep ensures that dir (or the default root when empty) exists and returns it.
func Prep(dir string) (string, error) {
	path, err := Resolve(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", path, err)
	}

	return path, nil
}
