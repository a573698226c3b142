// Package provenance resolves, for every field of a derived definition, the
// descriptor of the ancestor declaration it inherits from.
//
// Resolution pipeline for one field list and its immediate ancestor id:
//  1. Resolve the ancestor through the repository; a missing ancestor is an
//     error, or a recorded status in tolerant mode.
//  2. Expand the ancestor first (its own provenance is resolved against its
//     own ancestor), memoized per id and guarded against cycles.
//  3. The root field always takes the ancestor root's declaration.
//  4. Children are aligned in lockstep with the ancestor's children. Names
//     match when equal or when the derived name is a type-narrowed rename of
//     a polymorphic ancestor name. A field with no counterpart climbs the
//     ancestor chain until some ancestor declares it.
//
// Descriptors produced here are tagged schema.OriginGenerated. Authored
// descriptors are never overwritten below the root, and generated ones are
// only recomputed when Settings.Normalize is set.
//
// A Resolver is not safe for concurrent use.
package provenance
