package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipebox/internal/domain"
	"recipebox/internal/pkg/response"
)

// Handler обрабатывает HTTP запросы для избранного
type Handler struct {
	store FavoriteStore
	log   *zap.Logger
}

// NewHandler создаёт новый handler
func NewHandler(store FavoriteStore, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// RegisterRoutes регистрирует routes для избранного
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.GetFavorites)
		favorites.POST("/:recipeId", h.AddFavorite)
		favorites.DELETE("/:recipeId", h.RemoveFavorite)
		favorites.GET("/:recipeId/check", h.CheckFavorite)
	}
}

// GetFavorites возвращает избранные рецепты
//
// @Summary Получить список избранных рецептов
// @Tags Favorite
// @Produce json
// @Success 200 {object} FavoriteListResponse
// @Router /favorites [get]
func (h *Handler) GetFavorites(c *gin.Context) {
	response.Success(c, http.StatusOK, ToFavoriteListResponse(h.store.FavoriteRecipes()))
}

// AddFavorite добавляет рецепт в избранное.
// Повторное добавление ничего не меняет; на несуществующий рецепт отвечаем 404.
//
// @Summary Добавить рецепт в избранное
// @Tags Favorite
// @Param recipeId path int64 true "ID рецепта"
// @Success 201 {object} CheckFavoriteResponse
// @Failure 400 {object} map[string]interface{} "Некорректный ID рецепта"
// @Failure 404 {object} map[string]interface{} "Рецепт не найден"
// @Router /favorites/{recipeId} [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	recipeID, ok := parseRecipeID(c)
	if !ok {
		return
	}

	if err := h.store.AddFavorite(recipeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Recipe not found")
			return
		}
		h.log.Error("add favorite failed", zap.Int64("recipe_id", recipeID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to add favorite")
		return
	}

	response.Success(c, http.StatusCreated, CheckFavoriteResponse{IsFavorite: true})
}

// RemoveFavorite удаляет рецепт из избранного
//
// @Summary Удалить рецепт из избранного
// @Tags Favorite
// @Param recipeId path int64 true "ID рецепта"
// @Success 204 "Рецепт удалён из избранного"
// @Failure 404 {object} map[string]interface{} "Рецепта нет в избранном"
// @Router /favorites/{recipeId} [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	recipeID, ok := parseRecipeID(c)
	if !ok {
		return
	}

	if err := h.store.RemoveFavorite(recipeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Favorite not found")
			return
		}
		h.log.Error("remove favorite failed", zap.Int64("recipe_id", recipeID), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to remove favorite")
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckFavorite проверяет, находится ли рецепт в избранном
//
// @Router /favorites/{recipeId}/check [get]
func (h *Handler) CheckFavorite(c *gin.Context) {
	recipeID, ok := parseRecipeID(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, CheckFavoriteResponse{IsFavorite: h.store.IsFavorite(recipeID)})
}

func parseRecipeID(c *gin.Context) (int64, bool) {
	recipeID, err := strconv.ParseInt(c.Param("recipeId"), 10, 64)
	if err != nil || recipeID <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidID, "Invalid recipe ID")
		return 0, false
	}
	return recipeID, true
}
