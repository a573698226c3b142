// Package schema provides the in-memory model of flattened schema trees
// and their YAML representation.
//
// A Definition is one schema version (a "profile") with an ordered list of
// Fields and an optional immediate ancestor id. Field order encodes tree
// structure: a field's children are the fields that follow it whose path
// extends its own by exactly one segment.
//
// Key types:
//   - Field: one node, addressed by a dot-separated path
//   - Max: upper cardinality bound, a non-negative integer or Unbounded
//   - Descriptor: provenance of a field (where it was declared, with which bounds)
//   - Origin: whether a Descriptor was authored or generated
//   - Bundle: the YAML document form holding many Definitions
package schema
