package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validation error messages
var (
	ErrRequired      = errors.New("this field is required")
	ErrInvalidNumber = errors.New("must be a valid number")
	ErrInvalidRange  = errors.New("value out of valid range")
	ErrInvalidSuffix = errors.New("invalid file suffix")
)

// ValidateRequired ensures a string value is not empty
func ValidateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateDuration validates that a string can be parsed as a time.Duration
func ValidateDuration(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil // default applies
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration format (use: 250ms, 2s): %w", err)
	}
	if d < 10*time.Millisecond {
		return fmt.Errorf("%w: must be at least 10ms", ErrInvalidRange)
	}
	return nil
}

// ValidateIntRange validates that a string represents an integer within a range
func ValidateIntRange(min, max int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return ErrInvalidNumber
		}
		if n < min || n > max {
			return fmt.Errorf("%w: must be between %d and %d", ErrInvalidRange, min, max)
		}
		return nil
	}
}

// ValidateSuffixes checks that every line is a single dotted suffix such as
// ".md". Multi-part suffixes like ".tar.gz" never match a file name.
func ValidateSuffixes(s string) error {
	for _, ext := range splitLines(s) {
		if len(ext) < 2 || ext[0] != '.' || strings.Contains(ext[1:], ".") {
			return fmt.Errorf("%w %q (use .md, .pdf, ...)", ErrInvalidSuffix, ext)
		}
	}
	return nil
}

// ValidateOutputFormat validates manifest format values
func ValidateOutputFormat(s string) error {
	switch strings.ToLower(s) {
	case "json", "yaml":
		return nil
	}
	return fmt.Errorf("invalid output format: must be json or yaml")
}

// ValidateLogLevel validates log level values
func ValidateLogLevel(s string) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(s)] {
		return fmt.Errorf("invalid log level: must be one of debug, info, warn, error")
	}
	return nil
}

// ValidateLogFormat validates log format values
func ValidateLogFormat(s string) error {
	validFormats := map[string]bool{
		"json":   true,
		"pretty": true,
	}
	if !validFormats[strings.ToLower(s)] {
		return fmt.Errorf("invalid log format: must be json or pretty")
	}
	return nil
}
