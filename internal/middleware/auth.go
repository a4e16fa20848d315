package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vecta-backend/internal/errs"
	"github.com/deppfellow/vecta-backend/internal/server"
)

// APIKeyHeader carries the shared secret on protected routes.
const APIKeyHeader = "X-API-Key"

// AuthMiddleware enforces the static API key.
//
// The key and the development bypass are read from config once, when the
// middleware is built.
type AuthMiddleware struct {
	server *server.Server
	apiKey []byte
	bypass bool
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		apiKey: []byte(s.Config.Auth.APIKey),
		bypass: s.Config.Primary.IsDevelopment(),
	}
}

// RequireAPIKey rejects requests whose X-API-Key does not match the
// configured secret with a 401. An unset secret rejects every request
// outside development.
func (auth *AuthMiddleware) RequireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if auth.bypass {
			return next(c)
		}

		provided := []byte(c.Request().Header.Get(APIKeyHeader))
		if len(auth.apiKey) == 0 || subtle.ConstantTimeCompare(provided, auth.apiKey) != 1 {
			GetLogger(c).Warn().
				Str("function", "RequireAPIKey").
				Bool("key_present", len(provided) > 0).
				Msg("rejected request with missing or invalid api key")

			return errs.NewUnauthorizedError("Unauthorized")
		}

		return next(c)
	}
}
