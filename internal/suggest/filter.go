// Package suggest implements the candidate filter behind the station pickers.
//
// Matching is plain case-insensitive substring containment over every
// searchable field of a candidate. Results keep the input order; there is no
// relevance scoring.
package suggest

import "strings"

// DefaultLimit is the number of suggestions shown when no limit is given.
const DefaultLimit = 10

// Candidate is an entry that can be offered by an autocomplete control.
type Candidate interface {
	// DisplayValue is the text shown for the candidate and the value handed
	// to consumers on selection. An empty display value marks the record as
	// incomplete and it is never offered.
	DisplayValue() string
	// SearchFields are matched against the query. Empty fields never match.
	SearchFields() []string
	// Key identifies the candidate for lookups after selection.
	Key() string
}

// Filter returns the candidates matching query, at most limit of them.
//
// An empty or whitespace-only query returns the first limit candidates.
// Any other query is matched as typed, surrounding spaces included. The input
// slice is never modified.
func Filter[C Candidate](query string, candidates []C, limit int) []C {
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := make([]C, 0, min(limit, len(candidates)))
	browse := strings.TrimSpace(query) == ""
	q := strings.ToLower(query)

	for _, c := range candidates {
		if len(result) == limit {
			break
		}
		if c.DisplayValue() == "" {
			continue
		}
		if browse || MatchesAny(q, c.SearchFields()) {
			result = append(result, c)
		}
	}

	return result
}

// MatchesAny reports whether query is a case-insensitive substring of any
// non-empty field.
func MatchesAny(query string, fields []string) bool {
	q := strings.ToLower(query)
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ExactMatch returns the first candidate whose display value equals text,
// ignoring case.
func ExactMatch[C Candidate](text string, candidates []C) (C, bool) {
	var zero C
	if text == "" {
		return zero, false
	}
	for _, c := range candidates {
		display := c.DisplayValue()
		if display != "" && strings.EqualFold(display, text) {
			return c, true
		}
	}
	return zero, false
}
