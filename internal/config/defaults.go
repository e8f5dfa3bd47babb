package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/filemanifest/internal/scan"
)

// Default values
const (
	// Scan defaults
	DefaultMaxDepth       = scan.DefaultMaxDepth
	DefaultRootLabel      = scan.DefaultRootLabel
	DefaultFollowSymlinks = true

	// Output defaults; an empty path means stdout
	DefaultOutputPath   = ""
	DefaultOutputFormat = "json"
	DefaultIndent       = 2

	// Watch defaults
	DefaultDebounce = 500 * time.Millisecond

	// Batch defaults
	DefaultBatchWorkers = 4

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".filemanifest"
	}
	return filepath.Join(home, ".filemanifest")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			MaxDepth:       DefaultMaxDepth,
			RootLabel:      DefaultRootLabel,
			Exclude:        append([]string(nil), scan.DefaultExcludePatterns...),
			Extensions:     append([]string(nil), scan.DefaultExtensions...),
			FollowSymlinks: DefaultFollowSymlinks,
		},
		Output: OutputConfig{
			Path:   DefaultOutputPath,
			Format: DefaultOutputFormat,
			Indent: DefaultIndent,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
		Batch: BatchConfig{
			Workers: DefaultBatchWorkers,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
