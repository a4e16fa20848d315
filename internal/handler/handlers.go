package handler

import (
	"github.com/deppfellow/vecta-backend/internal/server"
	"github.com/deppfellow/vecta-backend/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	Task    *TaskHandler
	Contact *ContactHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Task:    NewTaskHandler(s, services.Task),
		Contact: NewContactHandler(s, services.Contact),
	}
}
