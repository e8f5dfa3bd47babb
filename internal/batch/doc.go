// Package batch loads job files that describe several manifests to
// generate in one run.
//
// # Job Format
//
// Job files can be written in YAML or JSON format:
//
//	targets:
//	  - root: ./project
//	    output: ./project/site/file_manifest.json
//	  - root: ./archive
//	    output: ./archive/site/file_manifest.json.gz
//	    max_depth: 3
//	    label: ARCHIVE
//	options:
//	  continue_on_error: true
//	  concurrency: 4
//	  summary: ./reports/manifests.json
//
// Relative roots and outputs are resolved against the job file's directory.
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrNoTargets: job file lists no targets
//   - ErrEmptyRoot: target is missing its root
//   - ErrEmptyOutput: target is missing its output file
//   - ErrInvalidFormat: file is not valid YAML/JSON
//   - ErrFileNotFound: job file does not exist
//   - ErrUnsupportedExt: unsupported file extension
package batch
