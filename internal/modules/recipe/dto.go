package recipe

import (
	"strings"

	"recipebox/internal/domain"
)

// RecipeRequest is the body of create and update calls. Ingredients may be
// sent as a list or as one string (comma or newline separated).
type RecipeRequest struct {
	Title       string                `json:"title" validate:"required,min=3"`
	Description string                `json:"description"`
	Ingredients domain.IngredientList `json:"ingredients" validate:"required,min=2"`
	PrepTime    *int                  `json:"prep_time,omitempty" validate:"omitempty,gte=0"`
}

var recipeMessages = map[string]string{
	"title.required":       "Recipe title is required",
	"title.min":            "Title must be at least 3 characters long",
	"ingredients.required": "Ingredients are required",
	"ingredients.min":      "Please add at least 2 ingredients (one per line)",
	"prep_time.gte":        "Preparation time cannot be negative",
}

func (r *RecipeRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.Ingredients != nil {
		r.Ingredients = r.Ingredients.Normalize()
	}
}

// ToRecipe builds the domain value; id is ignored by AddRecipe.
func (r RecipeRequest) ToRecipe(id int64) domain.Recipe {
	return domain.Recipe{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Ingredients: r.Ingredients,
		PrepTime:    r.PrepTime,
	}
}

type RecipeListResponse struct {
	Recipes    []domain.Recipe `json:"recipes"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

// ToRecipeListResponse slices one page out of the full collection.
func ToRecipeListResponse(all []domain.Recipe, page, perPage int) RecipeListResponse {
	total := len(all)
	totalPages := total / perPage
	if total%perPage > 0 {
		totalPages++
	}

	// page is client input; compare before multiplying so it cannot overflow
	start := total
	if page-1 < totalPages {
		start = (page - 1) * perPage
	}
	end := min(start+perPage, total)

	return RecipeListResponse{
		Recipes:    all[start:end],
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}

type SearchRequest struct {
	Term string `json:"term"`
}

type SearchResponse struct {
	Term    string          `json:"term"`
	Recipes []domain.Recipe `json:"recipes"`
}
