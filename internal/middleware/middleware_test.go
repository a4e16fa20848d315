package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/vecta-backend/internal/config"
	"github.com/deppfellow/vecta-backend/internal/database"
	"github.com/deppfellow/vecta-backend/internal/errs"
	"github.com/deppfellow/vecta-backend/internal/server"
)

func newTestServer(env string, mutate func(*config.Config)) *server.Server {
	cfg := &config.Config{
		Primary:       config.Primary{Env: env},
		Observability: config.DefaultObservabilityConfig(),
	}
	if mutate != nil {
		mutate(cfg)
	}

	logger := zerolog.Nop()
	return &server.Server{Config: cfg, Logger: &logger}
}

// newTestEcho mounts GET and POST /ping behind mw and answers "ok".
func newTestEcho(s *server.Server, mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	ok := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	e.GET("/ping", ok, mw...)
	e.POST("/ping", ok, mw...)

	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		apiKey     string
		header     string
		wantStatus int
	}{
		{name: "missing key", env: config.EnvProduction, apiKey: "secret", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", env: config.EnvProduction, apiKey: "secret", header: "nope", wantStatus: http.StatusUnauthorized},
		{name: "matching key", env: config.EnvProduction, apiKey: "secret", header: "secret", wantStatus: http.StatusOK},
		{name: "unset secret rejects everything", env: config.EnvProduction, header: "", wantStatus: http.StatusUnauthorized},
		{name: "staging is not bypassed", env: "staging", apiKey: "secret", wantStatus: http.StatusUnauthorized},
		{name: "development bypass", env: config.EnvDevelopment, apiKey: "secret", wantStatus: http.StatusOK},
		{name: "local bypass", env: config.EnvLocal, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.env, func(cfg *config.Config) {
				cfg.Auth.APIKey = tt.apiKey
			})
			e := newTestEcho(s, NewAuthMiddleware(s).RequireAPIKey)

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}

			rec := serve(e, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestRequireAllowedReferer(t *testing.T) {
	tests := []struct {
		name       string
		env        string
		referers   string
		referer    string
		wantStatus int
	}{
		{name: "no prefixes configured", env: config.EnvProduction, wantStatus: http.StatusOK},
		{name: "known site", env: config.EnvProduction, referers: "https://example.com/, https://www.example.com/", referer: "https://www.example.com/contact", wantStatus: http.StatusOK},
		{name: "unknown site", env: config.EnvProduction, referers: "https://example.com/", referer: "https://evil.test/", wantStatus: http.StatusForbidden},
		{name: "missing referer", env: config.EnvProduction, referers: "https://example.com/", wantStatus: http.StatusForbidden},
		{name: "development bypass", env: config.EnvDevelopment, referers: "https://example.com/", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(tt.env, func(cfg *config.Config) {
				cfg.Auth.AllowedReferers = tt.referers
			})
			e := newTestEcho(s, NewRefererMiddleware(s).RequireAllowedReferer)

			req := httptest.NewRequest(http.MethodPost, "/ping", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}

			rec := serve(e, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.JSONEq(t, `{"success":false,"error":"Forbidden"}`, rec.Body.String())
			}
		})
	}
}

func newCORSEcho(s *server.Server) *echo.Echo {
	e := newTestEcho(s)
	e.Use(NewGlobalMiddlewares(s).CORS())
	return e
}

func TestCORSWithoutOrigins(t *testing.T) {
	e := newCORSEcho(newTestServer(config.EnvProduction, nil))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example.com")
	rec := serve(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	preflight := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	preflight.Header.Set(echo.HeaderOrigin, "https://app.example.com")
	rec = serve(e, preflight)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSWithOrigins(t *testing.T) {
	s := newTestServer(config.EnvProduction, func(cfg *config.Config) {
		cfg.Server.CORSAllowedOrigins = "https://app.example.com, https://admin.example.com"
	})
	e := newCORSEcho(s)

	t.Run("allowed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(echo.HeaderOrigin, "https://admin.example.com")
		rec := serve(e, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://admin.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Equal(t, "GET,POST,PUT,DELETE,OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
		assert.Equal(t, "Content-Type,Authorization,X-API-Key", rec.Header().Get(echo.HeaderAccessControlAllowHeaders))
		assert.Equal(t, "86400", rec.Header().Get(echo.HeaderAccessControlMaxAge))
	})

	t.Run("preflight advertises methods and headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set(echo.HeaderOrigin, "https://app.example.com")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := serve(e, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), APIKeyHeader)
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodDelete)
		assert.Equal(t, "86400", rec.Header().Get(echo.HeaderAccessControlMaxAge))
	})

	t.Run("other origin gets no header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(echo.HeaderOrigin, "https://evil.test")
		rec := serve(e, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods))
		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlMaxAge))
	})
}

func TestCORSStrictRejectsUnknownPreflight(t *testing.T) {
	s := newTestServer(config.EnvProduction, func(cfg *config.Config) {
		cfg.Server.CORSAllowedOrigins = "https://app.example.com"
		cfg.Server.CORSStrict = true
	})
	e := newCORSEcho(s)

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.test")
	rec := serve(e, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Forbidden"}`, rec.Body.String())
}

func TestGlobalErrorHandler(t *testing.T) {
	s := newTestServer(config.EnvProduction, nil)
	global := NewGlobalMiddlewares(s)

	tests := []struct {
		name       string
		method     string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "http error is rendered as is",
			method:     http.MethodGet,
			err:        errs.NewNotFoundError("Task not found", nil),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"error":"Task not found"}`,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"error":"Route not found"}`,
		},
		{
			name:       "method not allowed keeps echo's status",
			method:     http.MethodGet,
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   `{"success":false,"error":"Method Not Allowed"}`,
		},
		{
			name:   "unmapped unique violation falls back to sqlerr",
			method: http.MethodPost,
			err: fmt.Errorf("%w: %w", database.ErrPersistence, &pgconn.PgError{
				Code:           "23505",
				TableName:      "tasks",
				ConstraintName: "tasks_slug_key",
			}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success":false,"error":"Task with this slug already exists"}`,
		},
		{
			name:       "unmapped missing row falls back to sqlerr",
			method:     http.MethodGet,
			err:        fmt.Errorf("%w: %w", database.ErrPersistence, pgx.ErrNoRows),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"error":"Resource not found"}`,
		},
		{
			name:       "unclassified error hides details",
			method:     http.MethodGet,
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"error":"Internal Server Error"}`,
		},
		{
			name:       "HEAD has no body",
			method:     http.MethodHead,
			err:        errs.NewNotFoundError("Task not found", nil),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(tt.method, "/", nil)
			rec := httptest.NewRecorder()

			global.GlobalErrorHandler(tt.err, e.NewContext(req, rec))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody == "" {
				assert.Empty(t, rec.Body.String())
				return
			}
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestEnhanceContextAttachesLogger(t *testing.T) {
	s := newTestServer(config.EnvProduction, nil)

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())

	var (
		fromEcho *zerolog.Logger
		fromCtx  *zerolog.Logger
		reqID    string
	)
	e.GET("/ping", func(c echo.Context) error {
		fromEcho = GetLogger(c)
		fromCtx = zerolog.Ctx(c.Request().Context())
		reqID = GetRequestID(c)
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := serve(e, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "req-123", reqID)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	require.NotNil(t, fromEcho)
	require.NotNil(t, fromCtx)
}
