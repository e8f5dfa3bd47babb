package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/filemanifest/internal/config"
)

// ConfigValues holds form values that map to the Config struct.
// Numeric and duration fields are strings, lists are one entry per line.
type ConfigValues struct {
	MaxDepth       string
	RootLabel      string
	FollowSymlinks bool

	ExcludePatterns string
	Extensions      string

	OutputPath   string
	OutputFormat string
	Indent       string
	Gzip         bool

	Debounce string

	BatchWorkers string

	LogLevel  string
	LogFormat string
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		MaxDepth:       strconv.Itoa(cfg.Scan.MaxDepth),
		RootLabel:      cfg.Scan.RootLabel,
		FollowSymlinks: cfg.Scan.FollowSymlinks,

		ExcludePatterns: strings.Join(cfg.Scan.Exclude, "\n"),
		Extensions:      strings.Join(cfg.Scan.Extensions, "\n"),

		OutputPath:   cfg.Output.Path,
		OutputFormat: cfg.Output.Format,
		Indent:       strconv.Itoa(cfg.Output.Indent),
		Gzip:         cfg.Output.Gzip,

		Debounce: formatDuration(cfg.Watch.Debounce),

		BatchWorkers: strconv.Itoa(cfg.Batch.Workers),

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
}

// ToConfig converts ConfigValues back to a validated Config
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	maxDepth, err := parseIntOrDefault(v.MaxDepth, config.DefaultMaxDepth)
	if err != nil {
		return nil, fmt.Errorf("invalid max_depth: %w", err)
	}

	indent, err := parseIntOrDefault(v.Indent, config.DefaultIndent)
	if err != nil {
		return nil, fmt.Errorf("invalid indent: %w", err)
	}

	debounce, err := parseDurationOrDefault(v.Debounce, config.DefaultDebounce)
	if err != nil {
		return nil, fmt.Errorf("invalid debounce: %w", err)
	}

	workers, err := parseIntOrDefault(v.BatchWorkers, config.DefaultBatchWorkers)
	if err != nil {
		return nil, fmt.Errorf("invalid workers: %w", err)
	}

	cfg := &config.Config{
		Scan: config.ScanConfig{
			MaxDepth:       maxDepth,
			RootLabel:      strings.TrimSpace(v.RootLabel),
			Exclude:        splitLines(v.ExcludePatterns),
			Extensions:     splitLines(v.Extensions),
			FollowSymlinks: v.FollowSymlinks,
		},
		Output: config.OutputConfig{
			Path:   strings.TrimSpace(v.OutputPath),
			Format: v.OutputFormat,
			Indent: indent,
			Gzip:   v.Gzip,
		},
		Watch: config.WatchConfig{
			Debounce: debounce,
		},
		Batch: config.BatchConfig{
			Workers: workers,
		},
		Logging: config.LoggingConfig{
			Level:  v.LogLevel,
			Format: v.LogFormat,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitLines returns the trimmed, non-empty lines of s. An empty result is
// a non-nil slice so a cleared list disables the filter instead of
// restoring the defaults.
func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(strings.TrimSpace(s))
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	if strings.TrimSpace(s) == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}
