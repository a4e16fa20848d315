package service

import (
	"fmt"

	"github.com/deppfellow/vecta-backend/internal/lib/email"
	"github.com/deppfellow/vecta-backend/internal/repository"
	"github.com/deppfellow/vecta-backend/internal/server"
)

// Services groups the business layer so the router receives a single value.
type Services struct {
	Task    *TaskService
	Contact *ContactService
}

// NewServices wires every service on top of the repositories. The email
// client is built from config and stays disabled without a Resend key.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	mailer, err := email.NewClient(s.Config, s.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email client: %w", err)
	}

	if !mailer.Enabled() {
		s.Logger.Warn().Msg("email notifications disabled: resend api key, sender or recipient missing")
	}

	return &Services{
		Task:    NewTaskService(repos.Task),
		Contact: NewContactService(repos.Contact, mailer),
	}, nil
}
