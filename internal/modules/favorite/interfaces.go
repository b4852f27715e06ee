package favorite

import "recipebox/internal/domain"

// FavoriteStore определяет методы для работы с избранным
type FavoriteStore interface {
	FavoriteRecipes() []domain.Recipe
	IsFavorite(id int64) bool
	AddFavorite(id int64) error
	RemoveFavorite(id int64) error
}
