package kbcards

import "strings"

// NormalizeQuery trims surrounding whitespace and lower-cases q.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Filter returns, in original order, every entry whose name or description
// contains the normalized query. An empty query returns all entries.
// The result is always a new non-nil slice; an empty result means
// "nothing matched", never "not loaded".
func Filter(query string, entries []*Entry) []*Entry {
	term := NormalizeQuery(query)
	if term == "" {
		return append(make([]*Entry, 0, len(entries)), entries...)
	}

	result := make([]*Entry, 0)
	for _, e := range entries {
		if e.Matches(term) {
			result = append(result, e)
		}
	}
	return result
}
