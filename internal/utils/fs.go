package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// osExecutable is swapped in tests
var osExecutable = os.Executable

// EnsureDir ensures the parent directory of path exists, creating it if necessary
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// ResolveRoot expands ~ and makes path absolute and clean
func ResolveRoot(path string) (string, error) {
	return filepath.Abs(ExpandPath(path))
}

// ExecutableRoot returns the parent of the directory holding the running
// binary. A tool installed as <project>/site/filemanifest scans <project>.
func ExecutableRoot() (string, error) {
	exe, err := osExecutable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// IsWritableDir reports whether a file can be created in dir
func IsWritableDir(dir string) bool {
	f, err := os.CreateTemp(dir, ".filemanifest-write-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
