package match

import (
	"sort"
)

// Default thresholds for "did you mean" suggestions.
const (
	DefaultMinScore       = 0.6
	DefaultMaxSuggestions = 3
)

// Candidate is a known identifier scored against a wanted one.
type Candidate struct {
	ID    string
	Score float64 // IdentSimilarity, 0-1
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known id against want.
// Returns candidates sorted by score (descending), then by id.
func RankCandidates(want string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, id := range known {
		if id == want {
			continue
		}

		candidates = append(candidates, Candidate{ID: id, Score: IdentSimilarity(want, id)})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to DefaultMaxSuggestions known ids scoring at least
// DefaultMinScore against want.
func Suggest(want string, known []string) []string {
	return RankCandidates(want, known).
		AboveThreshold(DefaultMinScore).
		Top(DefaultMaxSuggestions).
		IDs()
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].ID < c[j].ID
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns candidates with score at or above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// IDs returns the candidate ids in ranked order.
func (c CandidateList) IDs() []string {
	if len(c) == 0 {
		return nil
	}

	ids := make([]string, len(c))
	for i, cand := range c {
		ids[i] = cand.ID
	}

	return ids
}
