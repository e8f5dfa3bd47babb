package manifest

import "errors"

// Sentinel errors for the manifest package
var (
	// ErrUnsupportedFormat indicates an encoding other than json or yaml
	ErrUnsupportedFormat = errors.New("unsupported manifest format (use json or yaml)")

	// ErrInvalidDocument indicates input that is not a valid manifest
	ErrInvalidDocument = errors.New("invalid manifest document")
)
