// Package server assembles the HTTP surface around a recipe store.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipebox/internal/middleware"
	"recipebox/internal/modules/favorite"
	"recipebox/internal/modules/github"
	"recipebox/internal/modules/live"
	"recipebox/internal/modules/recipe"
	"recipebox/internal/modules/registration"
	"recipebox/internal/store"
)

// Deps is everything the router needs. GitHub and Registration are
// optional; their routes are skipped when nil.
type Deps struct {
	Store        *store.Store
	Hub          *live.Hub
	GitHub       github.UserFetcher
	Registration registration.Registrar
	CORSOrigins  []string
	Log          *zap.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.ErrorLogger(d.Log),
		middleware.CORS(d.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		recipe.NewHandler(d.Store, d.Log).RegisterRoutes(v1)
		favorite.NewHandler(d.Store, d.Log).RegisterRoutes(v1)

		if d.Hub != nil {
			live.NewHandler(d.Hub, middleware.AllowsOrigin(d.CORSOrigins), d.Log).RegisterRoutes(v1)
		}
		if d.GitHub != nil {
			github.NewHandler(d.GitHub, d.Log).RegisterRoutes(v1)
		}
		if d.Registration != nil {
			registration.NewHandler(d.Registration, d.Log).RegisterRoutes(v1)
		}
	}

	return r
}
