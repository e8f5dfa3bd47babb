package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader loads and validates job files
type Loader struct {
	defaults Options
}

// NewLoader creates a new job loader
func NewLoader() *Loader {
	return &Loader{defaults: DefaultOptions()}
}

// WithConcurrency sets the concurrency used when a job file leaves it unset
func (l *Loader) WithConcurrency(n int) *Loader {
	if n > 0 {
		l.defaults.Concurrency = n
	}
	return l
}

// Load reads and parses a job file from the given path. Relative target
// paths are resolved against the file's directory.
func (l *Loader) Load(path string) (*Job, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	job, err := l.LoadFromBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	job.ResolvePaths(baseDir)

	return job, nil
}

// LoadFromBytes parses a job from raw bytes
func (l *Loader) LoadFromBytes(data []byte, ext string) (*Job, error) {
	ext = strings.ToLower(ext)

	var job Job
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &job); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &job); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	l.applyDefaults(&job)

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return &job, nil
}

func (l *Loader) applyDefaults(job *Job) {
	if job.Options.Concurrency <= 0 {
		job.Options.Concurrency = l.defaults.Concurrency
	}
}
