// Package match decides whether two field names denote the same logical
// field, and ranks known identifiers against a misspelled one.
//
// Key functions:
//   - IsRenamedChoice: polymorphic "value[x]" vs concrete "valueQuantity"
//   - NormalizeIdent: case-folds and strips separators for fuzzy comparison
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates / Suggest: "did you mean" lists for unknown ids
package match
