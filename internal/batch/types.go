package batch

import (
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/filemanifest/internal/manifest"
)

// Job represents a complete job file
type Job struct {
	Targets []Target `yaml:"targets" json:"targets"`
	Options Options  `yaml:"options" json:"options"`
}

// Target is one directory to scan and the file its manifest goes to.
// Zero values fall back to the loaded configuration.
type Target struct {
	Root       string   `yaml:"root" json:"root"`
	Output     string   `yaml:"output" json:"output"`
	MaxDepth   int      `yaml:"max_depth,omitempty" json:"max_depth,omitempty"`
	Label      string   `yaml:"label,omitempty" json:"label,omitempty"`
	Format     string   `yaml:"format,omitempty" json:"format,omitempty"`
	Gzip       bool     `yaml:"gzip,omitempty" json:"gzip,omitempty"`
	Exclude    []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Extensions []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
}

// Options represents job-wide options
type Options struct {
	ContinueOnError bool   `yaml:"continue_on_error" json:"continue_on_error"`
	Concurrency     int    `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
	Summary         string `yaml:"summary,omitempty" json:"summary,omitempty"`
}

// Validate validates the job
func (j *Job) Validate() error {
	if len(j.Targets) == 0 {
		return ErrNoTargets
	}
	for i, t := range j.Targets {
		if t.Root == "" {
			return fmt.Errorf("target %d: %w", i, ErrEmptyRoot)
		}
		if t.Output == "" || t.Output == "-" {
			return fmt.Errorf("target %d: %w", i, ErrEmptyOutput)
		}
		if _, err := manifest.ParseFormat(t.Format); err != nil {
			return fmt.Errorf("target %d: %w", i, err)
		}
	}
	return nil
}

// ResolvePaths makes relative roots and outputs relative to baseDir
func (j *Job) ResolvePaths(baseDir string) {
	for i := range j.Targets {
		t := &j.Targets[i]
		if t.Root != "" && !filepath.IsAbs(t.Root) {
			t.Root = filepath.Join(baseDir, t.Root)
		}
		if t.Output != "" && t.Output != "-" && !filepath.IsAbs(t.Output) {
			t.Output = filepath.Join(baseDir, t.Output)
		}
	}
	if j.Options.Summary != "" && !filepath.IsAbs(j.Options.Summary) {
		j.Options.Summary = filepath.Join(baseDir, j.Options.Summary)
	}
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() Options {
	return Options{
		ContinueOnError: false,
		Concurrency:     4,
	}
}
