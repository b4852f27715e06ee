package store

import "recipebox/internal/domain"

// DefaultRecipes returns the recipes every new store starts with.
func DefaultRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID:          1,
			Title:       "Spaghetti Carbonara",
			Description: "Classic Italian pasta with eggs, cheese, and pancetta",
			Ingredients: domain.IngredientList{"pasta", "eggs", "cheese", "pancetta"},
			PrepTime:    minutes(30),
		},
		{
			ID:          2,
			Title:       "Chicken Stir Fry",
			Description: "Quick and healthy Asian-inspired dish",
			Ingredients: domain.IngredientList{"chicken", "vegetables", "soy sauce"},
			PrepTime:    minutes(20),
		},
		{
			ID:          3,
			Title:       "Chocolate Cake",
			Description: "Rich and moist chocolate dessert",
			Ingredients: domain.IngredientList{"flour", "cocoa", "eggs", "sugar"},
			PrepTime:    minutes(60),
		},
	}
}

func minutes(n int) *int { return &n }
