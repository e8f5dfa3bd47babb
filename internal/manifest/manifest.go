package manifest

import (
	"time"

	"github.com/quantmind-br/filemanifest/internal/scan"
)

// Version is the manifest schema version
const Version = "1.0"

// TimestampLayout renders local time with microseconds and no zone
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Manifest is the top-level document
type Manifest struct {
	Version   string     `json:"version" yaml:"version"`
	Generated string     `json:"generated" yaml:"generated"`
	Structure *scan.Node `json:"structure" yaml:"structure"`
}

// New wraps structure in a manifest stamped with generatedAt
func New(structure *scan.Node, generatedAt time.Time) *Manifest {
	return &Manifest{
		Version:   Version,
		Generated: generatedAt.Local().Format(TimestampLayout),
		Structure: structure,
	}
}

// GeneratedAt parses the generation timestamp as local time
func (m *Manifest) GeneratedAt() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, m.Generated, time.Local)
}

// SameStructure reports whether two manifests describe the same tree,
// ignoring their timestamps.
func (m *Manifest) SameStructure(other *Manifest) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Structure.Equal(other.Structure)
}

// TreeBuilder produces the tree for a root directory
type TreeBuilder interface {
	Build(rootPath string) (*scan.Node, error)
}

// Generator builds manifests from a tree builder
type Generator struct {
	builder TreeBuilder
	now     func() time.Time
}

// NewGenerator creates a generator using the wall clock
func NewGenerator(builder TreeBuilder) *Generator {
	return &Generator{
		builder: builder,
		now:     time.Now,
	}
}

// WithClock returns a copy of the generator reading time from now
func (g *Generator) WithClock(now func() time.Time) *Generator {
	return &Generator{
		builder: g.builder,
		now:     now,
	}
}

// Generate scans root and wraps the result. A missing root yields a
// manifest with a nil structure.
func (g *Generator) Generate(root string) (*Manifest, error) {
	structure, err := g.builder.Build(root)
	if err != nil {
		return nil, err
	}
	return New(structure, g.now()), nil
}
