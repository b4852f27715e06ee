package store

import (
	"go.uber.org/zap"

	"recipebox/internal/domain"
)

// Snapshot is a consistent, detached copy of the store state. Version grows
// by one with every change, so observers can discard out-of-order deliveries.
type Snapshot struct {
	Version         uint64          `json:"version"`
	Recipes         []domain.Recipe `json:"recipes"`
	Favorites       []int64         `json:"favorites"`
	SearchTerm      string          `json:"search_term"`
	Filtered        []domain.Recipe `json:"filtered"`
	Recommendations []domain.Recipe `json:"recommendations"`
}

// Subscribe registers fn to receive a Snapshot after every change. fn runs
// on the goroutine that made the change, after the store lock is released,
// and must not block. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// commit bumps the version and captures what observers should see.
// Caller holds mu.
func (s *Store) commit() Snapshot {
	s.version++
	return s.snapshot()
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Version:         s.version,
		Recipes:         cloneRecipes(s.recipes),
		Favorites:       append(make([]int64, 0, len(s.favorites)), s.favorites...),
		SearchTerm:      s.searchTerm,
		Filtered:        cloneRecipes(s.filtered),
		Recommendations: cloneRecipes(s.recommendations),
	}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("subscriber panicked", zap.Any("panic", r), zap.Uint64("version", snap.Version))
				}
			}()
			fn(snap)
		}()
	}
}

func cloneRecipes(in []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(in))
	for _, r := range in {
		out = append(out, r.Clone())
	}
	return out
}
