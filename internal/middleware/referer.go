package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vecta-backend/internal/errs"
	"github.com/deppfellow/vecta-backend/internal/server"
)

// RefererMiddleware only lets through requests sent from pages under one
// of the configured prefixes. It is off when no prefix is configured.
type RefererMiddleware struct {
	prefixes []string
	bypass   bool
}

func NewRefererMiddleware(s *server.Server) *RefererMiddleware {
	return &RefererMiddleware{
		prefixes: s.Config.Auth.Referers(),
		bypass:   s.Config.Primary.IsDevelopment(),
	}
}

func (r *RefererMiddleware) RequireAllowedReferer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if r.bypass || len(r.prefixes) == 0 {
			return next(c)
		}

		referer := c.Request().Referer()
		for _, prefix := range r.prefixes {
			if referer != "" && strings.HasPrefix(referer, prefix) {
				return next(c)
			}
		}

		GetLogger(c).Warn().
			Str("referer", referer).
			Msg("rejected request from unknown referer")

		return errs.NewForbiddenError("Forbidden")
	}
}
