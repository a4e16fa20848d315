package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vecta-backend/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the API
// and never require a key.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}
