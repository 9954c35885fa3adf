package domain

import (
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// MaxSuggestions caps the number of matched shortcuts shown to the user.
	// The fallback entry is appended on top of this.
	MaxSuggestions = 9

	// SelectedMarker prefixes the entry activated on a bare commit.
	SelectedMarker = "[Selected] "
)

// RankCandidates returns the candidates matching query, best first.
//
// Order: exact match, then prefix match, then shorter label.
// The sort is stable so equal candidates keep their input order.
func RankCandidates(query string, candidates []Candidate) []Candidate {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}

	matched := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if Matches(c.Label, q) {
			matched = append(matched, c)
		}
	}

	lq := strings.ToLower(q)
	slices.SortStableFunc(matched, func(a, b Candidate) int {
		return compareCandidates(a, b, lq)
	})

	return matched
}

// compareCandidates implements the ranking rules; lq is the lower-cased query.
func compareCandidates(a, b Candidate, lq string) int {
	la := strings.ToLower(a.Label)
	lb := strings.ToLower(b.Label)

	aExact, bExact := la == lq, lb == lq
	if aExact != bExact {
		if aExact {
			return -1
		}
		return 1
	}

	aPrefix, bPrefix := strings.HasPrefix(la, lq), strings.HasPrefix(lb, lq)
	if aPrefix != bPrefix {
		if aPrefix {
			return -1
		}
		return 1
	}

	return utf8.RuneCountInString(a.Label) - utf8.RuneCountInString(b.Label)
}

// BestCandidate returns the top-ranked candidate, if any.
func BestCandidate(query string, candidates []Candidate) (Candidate, bool) {
	ranked := RankCandidates(query, candidates)
	if len(ranked) == 0 {
		return Candidate{}, false
	}
	return ranked[0], true
}
