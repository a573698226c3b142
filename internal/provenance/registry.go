package provenance

import (
	"maps"

	"base-resolver/internal/common"
)

// AncestorStatus tags an ancestor id that could not be used.
type AncestorStatus int

const (
	StatusMissing AncestorStatus = iota + 1 // id did not resolve
	StatusCyclic                            // id is part of a cyclic chain
)

// String returns a human-readable status.
func (s AncestorStatus) String() string {
	switch s {
	case StatusMissing:
		return "ancestor missing"
	case StatusCyclic:
		return "cyclic ancestry"
	default:
		return common.UnknownStr
	}
}

// InvalidAncestors maps definition ids to the reason they could not serve as
// ancestors. It is only filled in tolerant mode.
type InvalidAncestors struct {
	statuses map[string]AncestorStatus
}

// NewInvalidAncestors returns an empty registry.
func NewInvalidAncestors() *InvalidAncestors {
	return &InvalidAncestors{statuses: make(map[string]AncestorStatus)}
}

// Record sets the status of id. A later record replaces an earlier one.
func (r *InvalidAncestors) Record(id string, status AncestorStatus) {
	r.statuses[id] = status
}

// Status returns the recorded status of id.
func (r *InvalidAncestors) Status(id string) (AncestorStatus, bool) {
	s, ok := r.statuses[id]
	return s, ok
}

// IDs returns the recorded ids in ascending order.
func (r *InvalidAncestors) IDs() []string {
	return common.SortedKeys(r.statuses)
}

// Len returns the number of recorded ids.
func (r *InvalidAncestors) Len() int {
	return len(r.statuses)
}

// Snapshot returns a copy of the registry contents.
func (r *InvalidAncestors) Snapshot() map[string]AncestorStatus {
	return maps.Clone(r.statuses)
}
