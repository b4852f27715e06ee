package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS разрешает локальные dev-серверы фронтенда плюс extra (CORS_ALLOWED_ORIGINS).
func CORS(extra []string) gin.HandlerFunc {
	allowedOrigins := originSet(extra)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// Если Origin есть и он разрешён, отражаем его
		if origin != "" && allowedOrigins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept, Origin, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent) // 204
			return
		}

		c.Next()
	}
}

// AllowsOrigin reports whether a WebSocket handshake from origin should be
// accepted: same-host requests (no Origin) and the configured origins.
func AllowsOrigin(extra []string) func(r *http.Request) bool {
	allowed := originSet(extra)

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin] || origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

func originSet(extra []string) map[string]bool {
	// Базовые разрешённые origins (локальная разработка)
	set := map[string]bool{
		"http://localhost:3000": true,
		"http://localhost:5173": true,
		"http://127.0.0.1:3000": true,
		"http://127.0.0.1:5173": true,
	}
	for _, o := range extra {
		set[o] = true
	}
	return set
}
