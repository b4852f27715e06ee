// Package store holds the in-memory recipe collection and the views derived
// from it: favorites, the search-filtered view and recommendations.
//
// A Store is created once per process and passed explicitly to whatever
// needs it. Every operation runs to completion under a single mutex and
// never blocks on I/O. The filtered view is recomputed inside each mutation,
// so readers never see it lag behind the collection or the search term.
package store

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"recipebox/internal/domain"
)

// Store is the single source of truth for recipes and their derived views.
type Store struct {
	mu sync.Mutex

	recipes         []domain.Recipe
	favorites       []int64
	searchTerm      string
	filtered        []domain.Recipe
	recommendations []domain.Recipe

	nextID  int64
	version uint64
	rng     *rand.Rand

	subs    map[int]func(Snapshot)
	nextSub int

	log *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithRand sets the random source used to shuffle recommendations.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

// WithSeed makes the recommendation shuffle deterministic.
func WithSeed(seed uint64) Option {
	return func(s *Store) { s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithRecipes replaces the built-in seed recipes.
func WithRecipes(recipes []domain.Recipe) Option {
	return func(s *Store) {
		s.nextID = 0
		s.load(recipes)
	}
}

// New creates a store seeded with the default recipes and an initial set of
// recommendations.
func New(opts ...Option) *Store {
	s := &Store{
		log:  zap.NewNop(),
		subs: make(map[int]func(Snapshot)),
	}
	s.load(DefaultRecipes())

	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		now := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(now, now>>17|1))
	}

	s.recompute()
	s.recommend()
	s.log.Debug("store initialised", zap.Int("recipes", len(s.recipes)))
	return s
}

// Recipes returns the whole collection in insertion order.
func (s *Store) Recipes() []domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecipes(s.recipes)
}

// Recipe returns the recipe with the given id.
func (s *Store) Recipe(id int64) (domain.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Recipe{}, fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	return s.recipes[i].Clone(), nil
}

// AddRecipe stores a copy of r under a freshly assigned id and returns it.
// Any id carried by r is ignored. Duplicate titles are allowed.
func (s *Store) AddRecipe(r domain.Recipe) domain.Recipe {
	s.mu.Lock()
	r = r.Clone()
	r.ID = s.nextID
	s.nextID++
	s.recipes = append(s.recipes, r)
	s.recompute()
	snap := s.commit()
	s.mu.Unlock()

	s.log.Debug("recipe added", zap.Int64("id", r.ID), zap.String("title", r.Title))
	s.notify(snap)
	return r.Clone()
}

// UpdateRecipe replaces the recipe whose id matches r.ID.
// It returns ErrNotFound when no such recipe exists.
func (s *Store) UpdateRecipe(r domain.Recipe) (domain.Recipe, error) {
	s.mu.Lock()
	i := s.indexOf(r.ID)
	if i < 0 {
		s.mu.Unlock()
		return domain.Recipe{}, fmt.Errorf("recipe %d: %w", r.ID, domain.ErrNotFound)
	}

	r = r.Clone()
	s.recipes[i] = r
	for j := range s.recommendations {
		if s.recommendations[j].ID == r.ID {
			s.recommendations[j] = r.Clone()
		}
	}
	s.recompute()
	snap := s.commit()
	s.mu.Unlock()

	s.log.Debug("recipe updated", zap.Int64("id", r.ID))
	s.notify(snap)
	return r.Clone(), nil
}

// DeleteRecipe removes the recipe and, in the same step, its favorite entry.
// A deleted recipe is also dropped from the current recommendations.
func (s *Store) DeleteRecipe(id int64) error {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}

	s.recipes = slices.Delete(s.recipes, i, i+1)
	s.favorites = slices.DeleteFunc(s.favorites, func(f int64) bool { return f == id })
	s.recommendations = slices.DeleteFunc(s.recommendations, func(r domain.Recipe) bool { return r.ID == id })
	s.recompute()
	snap := s.commit()
	s.mu.Unlock()

	s.log.Debug("recipe deleted", zap.Int64("id", id))
	s.notify(snap)
	return nil
}

// SetRecipes replaces the whole collection. Favorites and recommendations
// that no longer resolve are dropped.
func (s *Store) SetRecipes(recipes []domain.Recipe) {
	s.mu.Lock()
	s.load(recipes)
	s.recompute()
	snap := s.commit()
	s.mu.Unlock()

	s.log.Debug("recipes replaced", zap.Int("count", len(recipes)))
	s.notify(snap)
}

// SearchTerm returns the current search term.
func (s *Store) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

// SetSearchTerm replaces the search term and returns the new filtered view.
func (s *Store) SetSearchTerm(term string) []domain.Recipe {
	s.mu.Lock()
	s.searchTerm = term
	s.recompute()
	out := cloneRecipes(s.filtered)
	snap := s.commit()
	s.mu.Unlock()

	s.notify(snap)
	return out
}

// Filtered returns the recipes matching the current search term.
func (s *Store) Filtered() []domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecipes(s.filtered)
}

// Favorites returns the favorite ids in the order they were added.
func (s *Store) Favorites() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(make([]int64, 0, len(s.favorites)), s.favorites...)
}

// FavoriteRecipes resolves the favorite ids to recipes, keeping their order.
func (s *Store) FavoriteRecipes() []domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Recipe, 0, len(s.favorites))
	for _, id := range s.favorites {
		if i := s.indexOf(id); i >= 0 {
			out = append(out, s.recipes[i].Clone())
		}
	}
	return out
}

// IsFavorite reports whether id is in the favorites.
func (s *Store) IsFavorite(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.favorites, id)
}

// AddFavorite marks a recipe as favorite. Adding an id twice is a no-op.
// Unknown recipes are rejected with ErrNotFound.
func (s *Store) AddFavorite(id int64) error {
	s.mu.Lock()
	if s.indexOf(id) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	if slices.Contains(s.favorites, id) {
		s.mu.Unlock()
		return nil
	}

	s.favorites = append(s.favorites, id)
	snap := s.commit()
	s.mu.Unlock()

	s.log.Debug("favorite added", zap.Int64("id", id))
	s.notify(snap)
	return nil
}

// RemoveFavorite unmarks a recipe. It returns ErrNotFound when id was not a
// favorite.
func (s *Store) RemoveFavorite(id int64) error {
	s.mu.Lock()
	i := slices.Index(s.favorites, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("favorite %d: %w", id, domain.ErrNotFound)
	}

	s.favorites = slices.Delete(s.favorites, i, i+1)
	snap := s.commit()
	s.mu.Unlock()

	s.log.Debug("favorite removed", zap.Int64("id", id))
	s.notify(snap)
	return nil
}

// Recommendations returns the last generated recommendation set.
func (s *Store) Recommendations() []domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecipes(s.recommendations)
}

// GenerateRecommendations draws a fresh set of up to MaxRecommendations
// recipes that are not favorites. An empty pool yields an empty set.
func (s *Store) GenerateRecommendations() []domain.Recipe {
	s.mu.Lock()
	s.recommend()
	out := cloneRecipes(s.recommendations)
	snap := s.commit()
	s.mu.Unlock()

	s.log.Debug("recommendations generated", zap.Int("count", len(out)))
	s.notify(snap)
	return out
}

// Snapshot returns a consistent copy of the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.recipes, func(r domain.Recipe) bool { return r.ID == id })
}

// load replaces the collection. Ids that are missing or already taken get
// a fresh one from the store counter, so they never collide with an id a
// favorite or recommendation still points at. Caller holds mu (or is the
// constructor).
func (s *Store) load(recipes []domain.Recipe) {
	var maxID int64
	for _, r := range recipes {
		maxID = max(maxID, r.ID)
	}
	next := max(s.nextID, maxID+1)

	seen := make(map[int64]bool, len(recipes))
	s.recipes = make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		r = r.Clone()
		if r.ID <= 0 || seen[r.ID] {
			r.ID = next
			next++
		}
		seen[r.ID] = true
		s.recipes = append(s.recipes, r)
	}
	s.nextID = max(s.nextID, next)

	s.favorites = slices.DeleteFunc(s.favorites, func(id int64) bool { return !seen[id] })
	s.recommendations = slices.DeleteFunc(s.recommendations, func(r domain.Recipe) bool { return !seen[r.ID] })
}
