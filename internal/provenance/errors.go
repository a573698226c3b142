package provenance

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedAncestor matches every *UnresolvedAncestorError.
	ErrUnresolvedAncestor = errors.New("unresolved ancestor")
	// ErrCyclicAncestry matches every *CyclicAncestryError.
	ErrCyclicAncestry = errors.New("cyclic ancestry")
	// ErrDepthExceeded is returned when an ancestor chain is longer than Settings.MaxDepth.
	ErrDepthExceeded = errors.New("ancestry depth limit exceeded")
)

// UnresolvedAncestorError reports an ancestor id the repository doesn't know.
type UnresolvedAncestorError struct {
	// Path is the field whose alignment needed the ancestor.
	Path string
	// AncestorID is the id that failed to resolve.
	AncestorID string
	// Suggestions are known ids close to AncestorID.
	Suggestions []string
}

func (e *UnresolvedAncestorError) Error() string {
	msg := fmt.Sprintf("%s: ancestor %q not found", e.Path, e.AncestorID)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}

	return msg
}

// Is makes errors.Is(err, ErrUnresolvedAncestor) hold.
func (e *UnresolvedAncestorError) Is(target error) bool {
	return target == ErrUnresolvedAncestor
}

// CyclicAncestryError reports an ancestor chain that revisits an id.
type CyclicAncestryError struct {
	// Chain lists the ids from the first visit of the repeated id to its revisit.
	Chain []string
}

func (e *CyclicAncestryError) Error() string {
	return "cyclic ancestry: " + strings.Join(e.Chain, " -> ")
}

// Is makes errors.Is(err, ErrCyclicAncestry) hold.
func (e *CyclicAncestryError) Is(target error) bool {
	return target == ErrCyclicAncestry
}
