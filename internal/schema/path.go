package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ChoiceMarker is the suffix of a polymorphic field name, e.g. "value[x]".
const ChoiceMarker = "[x]"

// LocalName returns the last segment of a dotted path.
// Examples:
//   - "Patient" -> "Patient"
//   - "Patient.name.given" -> "given"
func LocalName(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}

	return path
}

// ParentPath returns the path without its last segment, or "" for a root path.
func ParentPath(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i]
	}

	return ""
}

// IsRoot returns true if the path has exactly one segment.
func IsRoot(path string) bool {
	return path != "" && !strings.Contains(path, ".")
}

// RootName returns the first segment of a dotted path.
func RootName(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}

	return path
}

// Segments splits a path into its dot-separated segments.
func Segments(path string) []string {
	if path == "" {
		return nil
	}

	return strings.Split(path, ".")
}

// IsDescendantOf returns true if path lies strictly below ancestor.
func IsDescendantOf(path, ancestor string) bool {
	return len(path) > len(ancestor)+1 &&
		path[len(ancestor)] == '.' &&
		strings.HasPrefix(path, ancestor)
}

// IsChildOf returns true if path is exactly one segment below parent.
func IsChildOf(path, parent string) bool {
	return IsDescendantOf(path, parent) && ParentPath(path) == parent
}

// ValidatePath checks that a path is a non-empty sequence of identifier
// segments. A segment may end in ChoiceMarker.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("empty path")
	}

	for seg := range strings.SplitSeq(path, ".") {
		if seg == "" {
			return fmt.Errorf("invalid path %q: empty segment", path)
		}

		name := strings.TrimSuffix(seg, ChoiceMarker)
		if !isValidIdent(name) {
			return fmt.Errorf("invalid path %q: invalid segment %q", path, seg)
		}
	}

	return nil
}

// isValidIdent checks that s starts with a letter or underscore and
// continues with letters, digits or underscores.
func isValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}
		} else if !isLetter(r) && !isDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
