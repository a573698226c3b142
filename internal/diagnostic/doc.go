// Package diagnostic provides structured warnings, errors, and infos
// collected while validating definitions and resolving provenance.
//
// Key capabilities:
//   - Structural problems in a definition's field list
//   - Tolerated missing ancestors
//   - Fields left without provenance after the ancestor chain was exhausted
//   - "Did you mean" suggestions for unknown ids
package diagnostic
