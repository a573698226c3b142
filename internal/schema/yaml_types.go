package schema

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- Max YAML methods ---

// ParseMax parses "*" or a non-negative integer.
func ParseMax(s string) (Max, error) {
	s = strings.TrimSpace(s)
	if s == "*" {
		return Unbounded, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid max %q: expected \"*\" or a non-negative integer", s)
	}

	if n < 0 {
		return 0, fmt.Errorf("invalid max %q: must not be negative", s)
	}

	return Max(n), nil
}

// UnmarshalYAML accepts "*" or a non-negative integer.
func (m *Max) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected scalar max, got %v", node.Line, node.Kind)
	}

	v, err := ParseMax(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*m = v

	return nil
}

// MarshalYAML outputs "*" for Unbounded and an integer otherwise.
func (m Max) MarshalYAML() (any, error) {
	if m.IsUnbounded() {
		return "*", nil
	}

	return int(m), nil
}

// --- Origin YAML methods ---

// ParseOrigin parses "authored" or "generated", case-insensitively.
func ParseOrigin(s string) (Origin, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "authored":
		return OriginAuthored, nil
	case "generated":
		return OriginGenerated, nil
	default:
		return 0, fmt.Errorf("invalid origin %q: expected authored or generated", s)
	}
}

// UnmarshalYAML accepts "authored" or "generated".
func (o *Origin) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseOrigin(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*o = v

	return nil
}

// MarshalYAML outputs the lower-case origin name.
func (o Origin) MarshalYAML() (any, error) {
	return strings.ToLower(o.String()), nil
}

// IsZero lets yaml omitempty drop the authored default.
func (o Origin) IsZero() bool {
	return o == OriginAuthored
}
