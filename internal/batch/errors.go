package batch

import "errors"

// Sentinel errors for the batch package
var (
	// ErrNoTargets indicates the job file lists no targets
	ErrNoTargets = errors.New("job file must contain at least one target")

	// ErrEmptyRoot indicates a target is missing the root directory
	ErrEmptyRoot = errors.New("target root cannot be empty")

	// ErrEmptyOutput indicates a target is missing an output file
	ErrEmptyOutput = errors.New("target output must be a file path")

	// ErrInvalidFormat indicates the job file is not valid YAML or JSON
	ErrInvalidFormat = errors.New("job file must be valid YAML or JSON")

	// ErrFileNotFound indicates the job file does not exist
	ErrFileNotFound = errors.New("job file not found")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")
)
