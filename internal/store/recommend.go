package store

import (
	"slices"

	"recipebox/internal/domain"
)

// MaxRecommendations caps the size of a recommendation set.
const MaxRecommendations = 3

// recommend draws up to MaxRecommendations non-favorite recipes in random
// order. The pool keeps collection order and is then shuffled with
// Fisher-Yates, so every ordering is equally likely for a given source.
// Caller holds mu.
func (s *Store) recommend() {
	pool := make([]domain.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if !slices.Contains(s.favorites, r.ID) {
			pool = append(pool, r.Clone())
		}
	}

	for i := len(pool) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	s.recommendations = pool[:min(len(pool), MaxRecommendations)]
}
