package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipebox/internal/pkg/response"
)

// UserFetcher is satisfied by *Client.
type UserFetcher interface {
	FetchUser(ctx context.Context, username string) (User, error)
}

// Handler обрабатывает поиск пользователей GitHub
type Handler struct {
	users UserFetcher
	log   *zap.Logger
}

func NewHandler(users UserFetcher, log *zap.Logger) *Handler {
	return &Handler{users: users, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/github/users/:username", h.GetUser)
}

// GetUser godoc
// @Summary Найти пользователя GitHub
// @Tags GitHub
// @Produce json
// @Param username path string true "GitHub login"
// @Success 200 {object} User
// @Failure 404 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /github/users/{username} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.FetchUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, MsgUserNotFound)
			return
		}
		h.log.Error("github lookup failed", zap.String("username", c.Param("username")), zap.Error(err))
		response.Error(c, http.StatusBadGateway, response.CodeUpstream, MsgUserNotFound)
		return
	}

	response.Success(c, http.StatusOK, user)
}
