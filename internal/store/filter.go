package store

import (
	"strings"

	"recipebox/internal/domain"
)

// recompute rebuilds the filtered view from the collection and the search
// term. Caller holds mu.
func (s *Store) recompute() {
	q := strings.ToLower(s.searchTerm)

	s.filtered = s.filtered[:0]
	for _, r := range s.recipes {
		if matches(r, q) {
			s.filtered = append(s.filtered, r.Clone())
		}
	}
}

// matches reports whether the lower-cased query occurs in the title,
// description or ingredient text. The empty query matches everything.
func matches(r domain.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), query) {
		return true
	}
	return strings.Contains(strings.ToLower(r.Ingredients.Text()), query)
}
