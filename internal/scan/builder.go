package scan

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/quantmind-br/filemanifest/internal/utils"
)

const (
	// DefaultMaxDepth bounds recursion; the scan root sits at depth 0
	DefaultMaxDepth = 5

	// DefaultRootLabel replaces the scan root's own name in the manifest
	DefaultRootLabel = "MARKOS PROJECT"
)

// ErrNotDirectory is returned when the scan root exists but is not a directory
var ErrNotDirectory = errors.New("not a directory")

// Options configures a Builder
type Options struct {
	MaxDepth       int
	RootLabel      string
	Exclude        []string
	Extensions     []string
	FollowSymlinks bool
	Logger         *utils.Logger
}

// DefaultOptions returns the options reproducing the stock manifest
func DefaultOptions() Options {
	return Options{
		MaxDepth:       DefaultMaxDepth,
		RootLabel:      DefaultRootLabel,
		FollowSymlinks: true,
	}
}

// Builder turns a directory into a Node tree
type Builder struct {
	fs             billy.Filesystem
	filter         *Filter
	maxDepth       int
	rootLabel      string
	followSymlinks bool
	logger         *utils.Logger
}

// NewBuilder creates a builder reading from fs
func NewBuilder(fs billy.Filesystem, opts Options) *Builder {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.RootLabel == "" {
		opts.RootLabel = DefaultRootLabel
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Builder{
		fs:             fs,
		filter:         NewFilter(opts.Exclude, opts.Extensions),
		maxDepth:       opts.MaxDepth,
		rootLabel:      opts.RootLabel,
		followSymlinks: opts.FollowSymlinks,
		logger:         opts.Logger.WithComponent("scan"),
	}
}

// NewOSBuilder creates a builder over the host filesystem. Paths handed
// to it must be absolute.
func NewOSBuilder(opts Options) *Builder {
	return NewBuilder(osfs.New("/"), opts)
}

// Filter returns the builder's inclusion rules
func (b *Builder) Filter() *Filter {
	return b.filter
}

// MaxDepth returns the configured depth bound
func (b *Builder) MaxDepth() int {
	return b.maxDepth
}

// Build scans rootPath as a top-level call with the configured depth bound
func (b *Builder) Build(rootPath string) (*Node, error) {
	return b.BuildTree(rootPath, "", b.maxDepth, 0)
}

// BuildTree scans rootPath and returns its folder node, or nil when the
// depth bound is reached or the path does not exist.
//
// relativePath is the slash-separated prefix recorded in file paths below
// rootPath; the empty string marks the top-level call, whose folder takes
// the root label and whose direct files are recorded by bare name.
func (b *Builder) BuildTree(rootPath, relativePath string, maxDepth, currentDepth int) (*Node, error) {
	if currentDepth >= maxDepth {
		return nil, nil
	}

	root := filepath.Clean(rootPath)
	info, err := b.fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	name := filepath.Base(root)
	prefix := relativePath
	if relativePath == "" {
		name = b.rootLabel
		prefix = parentRelative(root)
	}
	folder := NewFolder(name)

	entries, err := b.list(root)
	if err != nil {
		if os.IsPermission(err) {
			b.logger.Debug().Str("path", root).Msg("Permission denied, skipping directory")
			return folder, nil
		}
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	for _, e := range entries {
		if b.filter.Excluded(e.path) {
			continue
		}

		switch {
		case e.isFile:
			if !b.filter.Allowed(e.name) {
				continue
			}
			recorded := e.name
			if relativePath != "" {
				recorded = path.Join(relativePath, e.name)
			}
			folder.Children = append(folder.Children, NewFile(e.name, recorded))

		case e.isDir:
			child, err := b.BuildTree(e.path, path.Join(prefix, e.name), maxDepth, currentDepth+1)
			if err != nil {
				return nil, err
			}
			if child != nil && len(child.Children) > 0 {
				folder.Children = append(folder.Children, child)
			}
		}
	}

	return folder, nil
}

type entry struct {
	name   string
	path   string
	isFile bool
	isDir  bool
}

// list reads dir and orders entries by (is-file, lowercase name), which
// puts sub-directories first.
func (b *Builder) list(dir string) ([]entry, error) {
	infos, err := b.fs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(infos))
	for _, fi := range infos {
		e := entry{
			name: fi.Name(),
			path: b.fs.Join(dir, fi.Name()),
		}

		mode := fi.Mode()
		if mode&os.ModeSymlink != 0 {
			if !b.followSymlinks {
				continue
			}
			target, err := b.fs.Stat(e.path)
			if err != nil {
				if os.IsNotExist(err) || errors.Is(err, syscall.ELOOP) {
					b.logger.Debug().Str("path", e.path).Msg("Skipping unresolvable symlink")
					continue
				}
				return nil, fmt.Errorf("stat %s: %w", e.path, err)
			}
			mode = target.Mode()
		}

		e.isDir = mode.IsDir()
		e.isFile = mode.IsRegular()
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].isFile != entries[j].isFile {
			return !entries[i].isFile
		}
		return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
	})

	return entries, nil
}

// parentRelative returns root expressed relative to its own parent
func parentRelative(root string) string {
	rel, err := filepath.Rel(filepath.Dir(root), root)
	if err != nil {
		return filepath.ToSlash(filepath.Base(root))
	}
	return filepath.ToSlash(rel)
}
