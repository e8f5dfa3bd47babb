package output

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/quantmind-br/filemanifest/internal/manifest"
	"github.com/quantmind-br/filemanifest/internal/utils"
)

// ErrNoFile is returned by Read when the writer targets stdout
var ErrNoFile = errors.New("writer has no output file")

// Writer writes encoded manifests to stdout or a file
type Writer struct {
	path   string
	format manifest.Format
	indent int
	gzip   bool
	dryRun bool
	stdout io.Writer
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Path   string
	Format manifest.Format
	Indent int
	Gzip   bool
	DryRun bool
	Stdout io.Writer
}

// NewWriter creates a new output writer. An empty path or "-" selects
// stdout; a ".gz" suffix turns on compression.
func NewWriter(opts WriterOptions) *Writer {
	if opts.Format == "" {
		opts.Format = manifest.FormatJSON
	}
	if opts.Indent < 0 {
		opts.Indent = 2
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Path == "-" {
		opts.Path = ""
	}

	return &Writer{
		path:   opts.Path,
		format: opts.Format,
		indent: opts.Indent,
		gzip:   opts.Gzip || strings.HasSuffix(opts.Path, ".gz"),
		dryRun: opts.DryRun,
		stdout: opts.Stdout,
	}
}

// Path returns the output file, or "" for stdout
func (w *Writer) Path() string {
	return w.path
}

// ToStdout reports whether manifests go to stdout
func (w *Writer) ToStdout() bool {
	return w.path == ""
}

// Compressed reports whether output is gzip-compressed
func (w *Writer) Compressed() bool {
	return w.gzip
}

// Write encodes m to the configured destination
func (w *Writer) Write(ctx context.Context, m *manifest.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Dry run - encode and discard
	if w.dryRun {
		return w.encode(io.Discard, m)
	}

	if w.ToStdout() {
		return w.encode(w.stdout, m)
	}

	return w.writeFile(m)
}

// writeFile writes to a temporary sibling and renames it over the target
func (w *Writer) writeFile(m *manifest.Manifest) (err error) {
	if err := utils.EnsureDir(w.path); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp := w.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err = w.encode(f, m); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

func (w *Writer) encode(dst io.Writer, m *manifest.Manifest) error {
	if !w.gzip {
		return manifest.Encode(dst, m, w.format, w.indent)
	}

	gz := gzip.NewWriter(dst)
	if err := manifest.Encode(gz, m, w.format, w.indent); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// Read loads the manifest currently stored at the output path
func (w *Writer) Read() (*manifest.Manifest, error) {
	if w.ToStdout() {
		return nil, ErrNoFile
	}

	f, err := os.Open(w.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if w.gzip {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", manifest.ErrInvalidDocument, err)
		}
		defer gz.Close()
		r = gz
	}

	return manifest.Decode(r, w.format)
}

// Exists checks if the output file is present
func (w *Writer) Exists() bool {
	if w.ToStdout() {
		return false
	}
	_, err := os.Stat(w.path)
	return err == nil
}
