package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirStatus is what CheckDirStatus found out about a directory.
type DirStatus struct {
	Exists   bool
	Writable bool
	Error    error
}

// FileExists reports whether path can be stat'ed.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates dir and its parents when missing.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SaveTOMLFile encodes v into a temp file beside path and renames it into place.
func SaveTOMLFile(v any, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tagserve-*.toml")
	if err != nil {
		log.Errorf("Failed to create file: %v", err)
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// GetAbsolutePath resolves path against the working directory, or returns
// "unknown" for an empty path.
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// GetExecutableDir returns the directory holding the running binary.
func GetExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// CheckDirStatus creates dir if needed and probes it for write access.
func CheckDirStatus(dir string) DirStatus {
	var st DirStatus
	if err := EnsureDir(dir); err != nil {
		st.Error = err
		log.Warnf("Cannot create directory %s: %v", dir, err)
		return st
	}
	st.Exists = true

	probe, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dir, err)
		st.Error = err
		return st
	}
	probe.Close()
	os.Remove(probe.Name())
	st.Writable = true
	return st
}
