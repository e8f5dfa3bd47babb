package utils

import (
	"os"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates directory", func(t *testing.T) {
		tempDir := t.TempDir()
		testPath := filepath.Join(tempDir, "subdir", "file.txt")

		err := EnsureDir(testPath)
		require.NoError(t, err)

		// Check that the directory was created
		info, err := os.Stat(filepath.Dir(testPath))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing directory", func(t *testing.T) {
		tempDir := t.TempDir()
		testPath := filepath.Join(tempDir, "file.txt")

		err := EnsureDir(testPath)
		require.NoError(t, err)

		// Should not error if directory already exists
		err = EnsureDir(testPath)
		require.NoError(t, err)
	})
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "home directory with slash",
			input:    "~/test",
			expected: filepath.Join(os.Getenv("HOME"), "test"),
		},
		{
			name:     "home directory only",
			input:    "~",
			expected: os.Getenv("HOME"),
		},
		{
			name:     "regular path",
			input:    "/tmp/test",
			expected: "/tmp/test",
		},
		{
			name:     "relative path",
			input:    "./test",
			expected: "./test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandPath(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolveRoot(t *testing.T) {
	t.Run("absolute path is cleaned", func(t *testing.T) {
		got, err := ResolveRoot("/srv/project/site/..")
		require.NoError(t, err)
		assert.Equal(t, filepath.Clean("/srv/project"), got)
	})

	t.Run("relative path becomes absolute", func(t *testing.T) {
		got, err := ResolveRoot("project")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "project", filepath.Base(got))
	})

	t.Run("home expansion", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		got, err := ResolveRoot("~/project")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "project"), got)
	})
}

func TestExecutableRoot(t *testing.T) {
	original := osExecutable
	defer func() { osExecutable = original }()

	t.Run("parent of binary directory", func(t *testing.T) {
		project := t.TempDir()
		site := filepath.Join(project, "site")
		require.NoError(t, os.MkdirAll(site, 0755))
		exe := filepath.Join(site, "filemanifest")
		require.NoError(t, os.WriteFile(exe, []byte("bin"), 0755))

		osExecutable = func() (string, error) { return exe, nil }

		got, err := ExecutableRoot()
		require.NoError(t, err)

		want, err := filepath.EvalSymlinks(project)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("executable lookup fails", func(t *testing.T) {
		osExecutable = func() (string, error) { return "", errors.New("no executable") }

		_, err := ExecutableRoot()
		assert.Error(t, err)
	})
}

func TestIsWritableDir(t *testing.T) {
	t.Run("writable", func(t *testing.T) {
		dir := t.TempDir()
		assert.True(t, IsWritableDir(dir))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "temporary file should be removed")
	})

	t.Run("missing directory", func(t *testing.T) {
		assert.False(t, IsWritableDir(filepath.Join(t.TempDir(), "missing")))
	})
}
