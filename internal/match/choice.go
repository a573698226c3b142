package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"base-resolver/internal/schema"
)

// DefaultChoiceTypes are the concrete type names a polymorphic field can be
// narrowed to. In a renamed field the type name appears with an upper-case
// first letter: "value[x]" narrowed to "string" is "valueString".
var DefaultChoiceTypes = []string{
	// primitive types
	"base64Binary", "boolean", "canonical", "code", "date", "dateTime", "decimal",
	"id", "instant", "integer", "integer64", "markdown", "oid", "positiveInt",
	"string", "time", "unsignedInt", "uri", "url", "uuid",
	// general-purpose data types
	"Address", "Age", "Annotation", "Attachment", "CodeableConcept",
	"CodeableReference", "Coding", "ContactPoint", "Count", "Distance",
	"Duration", "HumanName", "Identifier", "Money", "Period", "Quantity",
	"Range", "Ratio", "RatioRange", "Reference", "SampledData", "Signature",
	"Timing",
	// metadata types
	"ContactDetail", "DataRequirement", "Expression", "ParameterDefinition",
	"RelatedArtifact", "TriggerDefinition", "UsageContext", "Availability",
	"ExtendedContactDetail",
	// special-purpose types
	"Dosage", "Meta",
}

var defaultMatcher = NewMatcher()

// Matcher holds the set of recognized concrete type suffixes.
// A Matcher is read-only after construction and safe for concurrent use.
type Matcher struct {
	suffixes map[string]struct{}
}

// NewMatcher builds a Matcher over DefaultChoiceTypes plus extra type names.
func NewMatcher(extra ...string) *Matcher {
	m := &Matcher{suffixes: make(map[string]struct{}, len(DefaultChoiceTypes)+len(extra))}

	for _, t := range DefaultChoiceTypes {
		m.add(t)
	}

	for _, t := range extra {
		m.add(t)
	}

	return m
}

func (m *Matcher) add(typeName string) {
	typeName = strings.TrimSpace(typeName)
	if typeName == "" {
		return
	}

	m.suffixes[upperFirst(typeName)] = struct{}{}
}

// IsRenamedChoice reports whether derived is a type-narrowed rename of the
// polymorphic name base, using DefaultChoiceTypes.
func IsRenamedChoice(base, derived string) bool {
	return defaultMatcher.IsRenamedChoice(base, derived)
}

// IsRenamedChoice reports whether derived is a type-narrowed rename of the
// polymorphic name base. base must end in schema.ChoiceMarker; derived must
// be the same prefix followed, at a word boundary, by a recognized type.
func (m *Matcher) IsRenamedChoice(base, derived string) bool {
	prefix, ok := strings.CutSuffix(base, schema.ChoiceMarker)
	if !ok || prefix == "" {
		return false
	}

	suffix, ok := strings.CutPrefix(derived, prefix)
	if !ok || suffix == "" {
		return false
	}

	if !startsToken(derived, len(prefix)) {
		return false
	}

	_, known := m.suffixes[suffix]

	return known
}

// SameField reports whether two local names denote the same logical field:
// equal names, or base is polymorphic and derived is one of its renames.
func (m *Matcher) SameField(base, derived string) bool {
	return base == derived || m.IsRenamedChoice(base, derived)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
