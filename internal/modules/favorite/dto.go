package favorite

import "recipebox/internal/domain"

// FavoriteListResponse: избранные рецепты в порядке добавления
type FavoriteListResponse struct {
	IDs     []int64         `json:"ids"`
	Recipes []domain.Recipe `json:"recipes"`
	Total   int             `json:"total"`
}

// CheckFavoriteResponse: ответ на проверку "в избранном ли"
type CheckFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

// ToFavoriteListResponse собирает ответ из уже разрешённых рецептов
func ToFavoriteListResponse(recipes []domain.Recipe) FavoriteListResponse {
	ids := make([]int64, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}

	return FavoriteListResponse{
		IDs:     ids,
		Recipes: recipes,
		Total:   len(ids),
	}
}
