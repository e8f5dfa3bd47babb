package scan

import "strings"

// DefaultExcludePatterns are matched as substrings of the full entry path.
// A path containing any of them anywhere is skipped, so ".git" also hides
// ".github" and ".gitignore", and ".log" hides "site.logo.png".
var DefaultExcludePatterns = []string{
	".git",
	".DS_Store",
	"__pycache__",
	"node_modules",
	".cursorignore",
	".gitignore",
	".pyc",
	".log",
	".backup",
	".bak",
}

// DefaultExtensions is the allow-list of file suffixes. Matching is case-sensitive.
var DefaultExtensions = []string{
	".md", ".txt", ".csv", ".json", ".html", ".js", ".css", ".py",
	".R", ".r", ".docx", ".pdf", ".png", ".jpg", ".jpeg",
}

// Filter decides which entries make it into the manifest
type Filter struct {
	exclude    []string
	extensions map[string]bool
}

// NewFilter creates a filter. Nil slices fall back to the defaults; an
// empty non-nil slice disables that rule.
func NewFilter(exclude, extensions []string) *Filter {
	if exclude == nil {
		exclude = DefaultExcludePatterns
	}
	if extensions == nil {
		extensions = DefaultExtensions
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[ext] = true
	}

	return &Filter{
		exclude:    append([]string(nil), exclude...),
		extensions: exts,
	}
}

// Excluded reports whether path contains any exclusion pattern
func (f *Filter) Excluded(path string) bool {
	for _, pattern := range f.exclude {
		if pattern != "" && strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

// Allowed reports whether a file name carries an allow-listed suffix
func (f *Filter) Allowed(name string) bool {
	ext := Suffix(name)
	if ext == "" {
		return false
	}
	return f.extensions[ext]
}

// Suffix returns the final dot-suffix of a file name. A dot in first
// position does not start a suffix (".md" and ".bashrc" have none), and
// a trailing dot yields none either.
func Suffix(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}
