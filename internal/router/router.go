// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API routes,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vecta-backend/internal/handler"
	"github.com/deppfellow/vecta-backend/internal/middleware"
	"github.com/deppfellow/vecta-backend/internal/server"
)

// Route describes one endpoint. Routes are behind the API key unless Public.
type Route struct {
	Method     string
	Path       string
	Handler    echo.HandlerFunc
	Public     bool
	Middleware []echo.MiddlewareFunc
}

// NewRouter builds the Echo instance with global middleware, system routes
// and the API routes.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	for _, route := range apiRoutes(h, middlewares) {
		var chain []echo.MiddlewareFunc
		if !route.Public {
			chain = append(chain, middlewares.Auth.RequireAPIKey)
		}
		chain = append(chain, route.Middleware...)

		router.Add(route.Method, route.Path, route.Handler, chain...)
	}

	return router
}

func apiRoutes(h *handler.Handlers, m *middleware.Middlewares) []Route {
	return []Route{
		{
			Method:  http.MethodGet,
			Path:    "/tasks",
			Handler: handler.Handle(h.Task.Handler, h.Task.ListTasks, http.StatusOK),
		},
		{
			Method:  http.MethodPost,
			Path:    "/tasks",
			Handler: handler.Handle(h.Task.Handler, h.Task.CreateTask, http.StatusOK),
		},
		{
			Method:  http.MethodGet,
			Path:    "/tasks/:taskSlug",
			Handler: handler.Handle(h.Task.Handler, h.Task.GetTask, http.StatusOK),
		},
		{
			Method:  http.MethodDelete,
			Path:    "/tasks/:taskSlug",
			Handler: handler.Handle(h.Task.Handler, h.Task.DeleteTask, http.StatusOK),
		},
		{
			Method:  http.MethodGet,
			Path:    "/contacts",
			Handler: handler.Handle(h.Contact.Handler, h.Contact.ListContacts, http.StatusOK),
		},
		{
			// Public contact form.
			Method:     http.MethodPost,
			Path:       "/contacts",
			Handler:    handler.Handle(h.Contact.Handler, h.Contact.CreateContact, http.StatusCreated),
			Public:     true,
			Middleware: []echo.MiddlewareFunc{m.Referer.RequireAllowedReferer},
		},
		{
			Method:  http.MethodGet,
			Path:    "/contacts/:contactId",
			Handler: handler.Handle(h.Contact.Handler, h.Contact.GetContact, http.StatusOK),
		},
	}
}
