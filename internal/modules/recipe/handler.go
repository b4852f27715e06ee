package recipe

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipebox/internal/domain"
	"recipebox/internal/pkg/response"
	"recipebox/internal/pkg/validator"
)

type Handler struct {
	store RecipeStore
	log   *zap.Logger
}

func NewHandler(store RecipeStore, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.POST("", h.Create)
		recipes.GET("/:id", h.Get)
		recipes.PUT("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
	}

	rg.GET("/search", h.GetSearch)
	rg.PUT("/search", h.SetSearch)

	rg.GET("/recommendations", h.GetRecommendations)
	rg.POST("/recommendations/refresh", h.RefreshRecommendations)
}

// List returns one page of the collection.
// @Router /recipes [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	response.Success(c, http.StatusOK, ToRecipeListResponse(h.store.Recipes(), page, perPage))
}

// @Router /recipes/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	r, err := h.store.Recipe(id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// Create validates the form and adds the recipe under a new id.
// @Router /recipes [post]
func (h *Handler) Create(c *gin.Context) {
	req, ok := bindRecipe(c)
	if !ok {
		return
	}

	r := h.store.AddRecipe(req.ToRecipe(0))
	h.log.Info("recipe created", zap.Int64("id", r.ID), zap.String("title", r.Title))
	response.Success(c, http.StatusCreated, r)
}

// Update replaces the recipe; a missing id is reported as 404.
// @Router /recipes/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindRecipe(c)
	if !ok {
		return
	}

	r, err := h.store.UpdateRecipe(req.ToRecipe(id))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// @Router /recipes/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteRecipe(id); err != nil {
		h.renderError(c, err)
		return
	}
	h.log.Info("recipe deleted", zap.Int64("id", id))
	c.Status(http.StatusNoContent)
}

// @Router /search [get]
func (h *Handler) GetSearch(c *gin.Context) {
	snap := h.store.Snapshot()
	response.Success(c, http.StatusOK, SearchResponse{
		Term:    snap.SearchTerm,
		Recipes: snap.Filtered,
	})
}

// SetSearch replaces the search term and returns the recomputed view.
// @Router /search [put]
func (h *Handler) SetSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid request body")
		return
	}

	filtered := h.store.SetSearchTerm(req.Term)
	response.Success(c, http.StatusOK, SearchResponse{Term: req.Term, Recipes: filtered})
}

// @Router /recommendations [get]
func (h *Handler) GetRecommendations(c *gin.Context) {
	response.Success(c, http.StatusOK, h.store.Recommendations())
}

// @Router /recommendations/refresh [post]
func (h *Handler) RefreshRecommendations(c *gin.Context) {
	response.Success(c, http.StatusOK, h.store.GenerateRecommendations())
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Recipe not found")
		return
	}
	h.log.Error("recipe operation failed", zap.Error(err))
	response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Internal error")
}

func bindRecipe(c *gin.Context) (RecipeRequest, bool) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid request body")
		return req, false
	}

	req.normalize()
	if errs := validator.Messages(req, recipeMessages); errs != nil {
		response.Validation(c, errs)
		return req, false
	}
	return req, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid recipe ID")
		return 0, false
	}
	return id, true
}
