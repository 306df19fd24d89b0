package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Home returns the user's home directory, or the working directory when it
// cannot be determined.
func Home() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return string(filepath.Separator)
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) string {
	if path == "~" {
		return Home()
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(Home(), path[2:])
	}
	return path
}

// Resolve makes path absolute. Relative paths are joined onto base; an empty
// path resolves to base itself.
func Resolve(path, base string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return Clean(base)
	}

	path = ExpandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(Clean(base), path)
}

// Clean expands "~" and cleans path, making it absolute against the
// working directory if needed.
func Clean(path string) string {
	path = ExpandHome(strings.TrimSpace(path))
	if path == "" {
		return Home()
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
