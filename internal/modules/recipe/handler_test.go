package recipe

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipebox/internal/domain"
	"recipebox/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.New(store.WithSeed(1))
	router := gin.New()
	NewHandler(s, zap.NewNop()).RegisterRoutes(router.Group("/api/v1"))
	return router, s
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr, env
}

func TestListRecipesPaginates(t *testing.T) {
	router, _ := setupRouter(t)

	rr, env := doJSON(t, router, http.MethodGet, "/api/v1/recipes?page=2&per_page=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list RecipeListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 2, list.TotalPages)
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, "Chocolate Cake", list.Recipes[0].Title)
}

func TestListRecipesPastTheEnd(t *testing.T) {
	router, _ := setupRouter(t)

	rr, env := doJSON(t, router, http.MethodGet, "/api/v1/recipes?page=9&per_page=500", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list RecipeListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 20, list.PerPage)
	assert.Empty(t, list.Recipes)
}

func TestListRecipesHugePage(t *testing.T) {
	router, _ := setupRouter(t)

	rr, env := doJSON(t, router, http.MethodGet, "/api/v1/recipes?page=922337203685477581&per_page=20", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var list RecipeListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 3, list.Total)
	assert.Empty(t, list.Recipes)
}

func TestCreateRecipeNeedsTwoIngredients(t *testing.T) {
	router, s := setupRouter(t)

	rr, env := doJSON(t, router, http.MethodPost, "/api/v1/recipes", map[string]any{
		"title":       "Toast",
		"ingredients": "bread\n  \n",
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Please add at least 2 ingredients (one per line)", env.Error.Details["ingredients"])
	assert.Len(t, s.Recipes(), 3)
}

func TestCreateRecipeAcceptsIngredientString(t *testing.T) {
	router, s := setupRouter(t)

	rr, env := doJSON(t, router, http.MethodPost, "/api/v1/recipes", map[string]any{
		"title":       "  Toast ",
		"description": "Bread",
		"ingredients": "bread,\n butter",
		"prep_time":   5,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created domain.Recipe
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Toast", created.Title)
	assert.Equal(t, domain.IngredientList{"bread", "butter"}, created.Ingredients)
	assert.Greater(t, created.ID, int64(3))
	assert.Len(t, s.Recipes(), 4)
}

func TestCreateRecipeValidation(t *testing.T) {
	router, s := setupRouter(t)

	rr, env := doJSON(t, router, http.MethodPost, "/api/v1/recipes", map[string]any{
		"title":       "ab",
		"ingredients": []string{" ", ""},
		"prep_time":   -1,
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "Title must be at least 3 characters long", env.Error.Details["title"])
	assert.Equal(t, "Please add at least 2 ingredients (one per line)", env.Error.Details["ingredients"])
	assert.Equal(t, "Preparation time cannot be negative", env.Error.Details["prep_time"])
	assert.Len(t, s.Recipes(), 3)
}

func TestCreateRecipeMissingFields(t *testing.T) {
	router, _ := setupRouter(t)

	rr, env := doJSON(t, router, http.MethodPost, "/api/v1/recipes", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Recipe title is required", env.Error.Details["title"])
	assert.Equal(t, "Ingredients are required", env.Error.Details["ingredients"])
}

func TestCreateRecipeBadBody(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestGetRecipe(t *testing.T) {
	router, _ := setupRouter(t)

	rr, env := doJSON(t, router, http.MethodGet, "/api/v1/recipes/2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var r domain.Recipe
	require.NoError(t, json.Unmarshal(env.Data, &r))
	assert.Equal(t, "Chicken Stir Fry", r.Title)

	rr, _ = doJSON(t, router, http.MethodGet, "/api/v1/recipes/99", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = doJSON(t, router, http.MethodGet, "/api/v1/recipes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateRecipe(t *testing.T) {
	router, s := setupRouter(t)

	rr, _ := doJSON(t, router, http.MethodPut, "/api/v1/recipes/1", map[string]any{
		"title":       "Carbonara",
		"ingredients": []string{"pasta", "guanciale"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	r, err := s.Recipe(1)
	require.NoError(t, err)
	assert.Equal(t, "Carbonara", r.Title)

	rr, env := doJSON(t, router, http.MethodPut, "/api/v1/recipes/77", map[string]any{
		"title":       "Ghost",
		"ingredients": "air, water",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestDeleteRecipe(t *testing.T) {
	router, s := setupRouter(t)
	require.NoError(t, s.AddFavorite(3))

	rr, _ := doJSON(t, router, http.MethodDelete, "/api/v1/recipes/3", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, s.Favorites())

	rr, _ = doJSON(t, router, http.MethodDelete, "/api/v1/recipes/3", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSearch(t *testing.T) {
	router, _ := setupRouter(t)

	rr, env := doJSON(t, router, http.MethodPut, "/api/v1/search", SearchRequest{Term: "choc"})
	require.Equal(t, http.StatusOK, rr.Code)

	var res SearchResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.Recipes, 1)
	assert.Equal(t, "Chocolate Cake", res.Recipes[0].Title)

	_, env = doJSON(t, router, http.MethodGet, "/api/v1/search", nil)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "choc", res.Term)
	assert.Len(t, res.Recipes, 1)
}

func TestRecommendations(t *testing.T) {
	router, s := setupRouter(t)
	require.NoError(t, s.AddFavorite(2))

	rr, env := doJSON(t, router, http.MethodPost, "/api/v1/recommendations/refresh", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var recs []domain.Recipe
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	assert.Len(t, recs, 2)
	for _, r := range recs {
		assert.NotEqual(t, int64(2), r.ID)
	}

	_, env = doJSON(t, router, http.MethodGet, "/api/v1/recommendations", nil)
	var current []domain.Recipe
	require.NoError(t, json.Unmarshal(env.Data, &current))
	assert.Equal(t, recs, current)
}
