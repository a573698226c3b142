package schema

import (
	"strconv"
	"time"
)

//go:generate go tool stringer -type=Origin -trimprefix=Origin -output=origin_string.go

// Origin records who produced a Descriptor.
type Origin int

const (
	OriginAuthored  Origin = iota // written by a human or carried in from an import
	OriginGenerated               // synthesized by the provenance resolver
)

// Max is an upper cardinality bound. Negative values are normalized to Unbounded.
type Max int

// Unbounded is the "*" upper bound.
const Unbounded Max = -1

// IsUnbounded returns true for the "*" bound.
func (m Max) IsUnbounded() bool {
	return m < 0
}

// String returns "*" for Unbounded, otherwise the decimal bound.
func (m Max) String() string {
	if m.IsUnbounded() {
		return "*"
	}

	return strconv.Itoa(int(m))
}

// Descriptor records where a field's identity and cardinality were declared.
type Descriptor struct {
	Path        string    `yaml:"path"`
	Min         int       `yaml:"min"`
	Max         Max       `yaml:"max"`
	Origin      Origin    `yaml:"origin,omitempty"`
	GeneratedAt time.Time `yaml:"generated_at,omitempty"`
}

// IsGenerated returns true if the descriptor was synthesized by the resolver.
func (d *Descriptor) IsGenerated() bool {
	return d != nil && d.Origin == OriginGenerated
}

// SameAs reports whether two descriptors carry the same declaration and origin,
// ignoring the generation timestamp.
func (d *Descriptor) SameAs(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}

	return d.Path == other.Path &&
		d.Min == other.Min &&
		d.Max == other.Max &&
		d.Origin == other.Origin
}

// Field is one node of a flattened schema tree.
type Field struct {
	Path string      `yaml:"path"`
	Min  int         `yaml:"min"`
	Max  Max         `yaml:"max"`
	Base *Descriptor `yaml:"base,omitempty"`
}

// Name returns the local (last) segment of the field path.
func (f *Field) Name() string {
	return LocalName(f.Path)
}

// IsRoot returns true if the field path has a single segment.
func (f *Field) IsRoot() bool {
	return IsRoot(f.Path)
}

// Definition is one schema version with its ordered fields.
type Definition struct {
	ID       string  `yaml:"id"`
	Ancestor string  `yaml:"ancestor,omitempty"`
	Fields   []Field `yaml:"fields"`
}

// Root returns the root field, or nil if the definition has no fields.
func (d *Definition) Root() *Field {
	if len(d.Fields) == 0 {
		return nil
	}

	return &d.Fields[0]
}

// Bundle is the YAML document form: a versioned list of definitions.
type Bundle struct {
	Version     string       `yaml:"version,omitempty"`
	Definitions []Definition `yaml:"definitions"`
}
