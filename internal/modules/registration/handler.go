package registration

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipebox/internal/pkg/response"
)

// Registrar is satisfied by *Service.
type Registrar interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

type Handler struct {
	service Registrar
	log     *zap.Logger
}

func NewHandler(service Registrar, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.Register)
}

// Register godoc
// @Summary Регистрация
// @Tags Registration
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Данные формы"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} map[string]interface{} "Ошибка валидации"
// @Failure 502 {object} map[string]interface{} "Upstream недоступен"
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidRequest, "Invalid request body")
		return
	}

	created, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.Validation(c, verr.Fields)
		case errors.Is(err, ErrRegistrationFailed):
			h.log.Warn("registration upstream failed", zap.Error(err))
			response.Error(c, http.StatusBadGateway, response.CodeUpstream, MsgRegistrationFailed)
		default:
			h.log.Error("registration failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, MsgRegistrationFailed)
		}
		return
	}

	response.Success(c, http.StatusCreated, created)
}
