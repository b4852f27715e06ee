package recipe

import (
	"recipebox/internal/domain"
	"recipebox/internal/store"
)

// RecipeStore is the part of store.Store the recipe endpoints need.
type RecipeStore interface {
	Recipes() []domain.Recipe
	Recipe(id int64) (domain.Recipe, error)
	AddRecipe(r domain.Recipe) domain.Recipe
	UpdateRecipe(r domain.Recipe) (domain.Recipe, error)
	DeleteRecipe(id int64) error

	SetSearchTerm(term string) []domain.Recipe
	Snapshot() store.Snapshot

	Recommendations() []domain.Recipe
	GenerateRecommendations() []domain.Recipe
}
