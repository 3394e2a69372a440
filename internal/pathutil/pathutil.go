// Package pathutil resolves user-supplied file paths.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/klytics/officeskills/internal/skillerr"
)

// Expand replaces a leading "~" or "~/" with the user's home directory.
// Paths of the form "~user" are returned unchanged.
func Expand(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// ResolveExisting expands path and checks that it exists.
func ResolveExisting(path string) (string, error) {
	resolved := Expand(path)
	if _, err := os.Stat(resolved); err != nil {
		if os.IsNotExist(err) {
			return "", skillerr.FileNotFound(resolved)
		}
		return "", skillerr.IOFailure(err)
	}
	return resolved, nil
}
