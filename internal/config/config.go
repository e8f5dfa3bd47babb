package config

import (
	"fmt"
	"time"

	"github.com/quantmind-br/filemanifest/internal/manifest"
)

// Config represents the application configuration
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan" yaml:"scan"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Watch   WatchConfig   `mapstructure:"watch" yaml:"watch"`
	Batch   BatchConfig   `mapstructure:"batch" yaml:"batch"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ScanConfig contains directory traversal settings
type ScanConfig struct {
	MaxDepth       int      `mapstructure:"max_depth" yaml:"max_depth"`
	RootLabel      string   `mapstructure:"root_label" yaml:"root_label"`
	Exclude        []string `mapstructure:"exclude" yaml:"exclude"`
	Extensions     []string `mapstructure:"extensions" yaml:"extensions"`
	FollowSymlinks bool     `mapstructure:"follow_symlinks" yaml:"follow_symlinks"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Format string `mapstructure:"format" yaml:"format"`
	Indent int    `mapstructure:"indent" yaml:"indent"`
	Gzip   bool   `mapstructure:"gzip" yaml:"gzip"`
}

// WatchConfig contains watch mode settings
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// MarshalYAML writes the debounce as a duration string ("500ms") so the
// file stays readable and round-trips through viper.
func (w WatchConfig) MarshalYAML() (interface{}, error) {
	return map[string]string{"debounce": w.Debounce.String()}, nil
}

// BatchConfig contains batch mode settings
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Scan.MaxDepth < 1 {
		c.Scan.MaxDepth = DefaultMaxDepth
	}
	if c.Scan.RootLabel == "" {
		c.Scan.RootLabel = DefaultRootLabel
	}
	format, err := manifest.ParseFormat(c.Output.Format)
	if err != nil {
		return fmt.Errorf("invalid output.format %q (use json or yaml): %w", c.Output.Format, err)
	}
	c.Output.Format = string(format)
	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		c.Output.Indent = DefaultIndent
	}
	if c.Watch.Debounce < 10*time.Millisecond {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.Batch.Workers < 1 {
		c.Batch.Workers = DefaultBatchWorkers
	}
	return nil
}
