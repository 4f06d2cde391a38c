package notes

import "strings"

// Query narrows the displayed notes.
type Query struct {
	Search   string
	Category string // CategoryAll or "" matches everything
}

// Match is a note that passed a Query, with its index in the full list.
type Match struct {
	Index int
	Note  Note
}

// Matches reports whether n passes q.
func (q Query) Matches(n Note) bool {
	if q.Category != "" && q.Category != CategoryAll && n.Category != q.Category {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Title), search) ||
		strings.Contains(strings.ToLower(n.Content), search)
}

// Apply returns the notes matching q, in list order.
func Apply(list []Note, q Query) []Match {
	var matches []Match
	for i, n := range list {
		if q.Matches(n) {
			matches = append(matches, Match{Index: i, Note: n})
		}
	}
	return matches
}
