package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deppfellow/vecta-backend/internal/database"
	"github.com/deppfellow/vecta-backend/internal/errs"
	"github.com/deppfellow/vecta-backend/internal/model"
	"github.com/deppfellow/vecta-backend/internal/repository"
	"github.com/deppfellow/vecta-backend/internal/sqlerr"
)

// ContactStore is the persistence the contact service needs.
type ContactStore interface {
	Create(ctx context.Context, contact *model.Contact) (database.WriteResult, error)
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	Count(ctx context.Context, status *model.ContactStatus) (int64, error)
	List(ctx context.Context, params repository.ListContactsParams) ([]model.Contact, error)
}

// Notifier announces a newly stored contact.
type Notifier interface {
	SendContactNotification(ctx context.Context, contact *model.Contact) error
}

// CreateContactInput is what a submitter controls. Status and timestamps
// are always assigned by the service.
type CreateContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Subject string
	Message string
}

// ContactPage is one page of GET /contacts.
type ContactPage struct {
	Data []model.Contact
	Meta model.PageMeta
}

type ContactService struct {
	store    ContactStore
	notifier Notifier
	now      func() time.Time
}

func NewContactService(store ContactStore, notifier Notifier) *ContactService {
	return &ContactService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// Create stores the contact and then sends the notification email once.
// A failed notification is logged and does not change the result.
func (s *ContactService) Create(ctx context.Context, input CreateContactInput) (*model.Contact, error) {
	logger := zerolog.Ctx(ctx)

	now := s.now().UTC().Truncate(time.Microsecond)
	contact := &model.Contact{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     optional(input.Phone),
		Company:   optional(input.Company),
		Subject:   input.Subject,
		Message:   input.Message,
		Status:    model.ContactStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.store.Create(ctx, contact); err != nil {
		logger.Error().
			Err(err).
			Str("db_error", string(sqlerr.ErrCode(err))).
			Msg("failed to create contact")
		return nil, errs.NewInternalServerError("Failed to create contact")
	}

	logger.Info().Str("contact_id", contact.ID).Msg("contact created")

	if s.notifier != nil {
		if err := s.notifier.SendContactNotification(context.WithoutCancel(ctx), contact); err != nil {
			logger.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to send contact notification")
		}
	}

	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*model.Contact, error) {
	contact, err := s.store.GetByID(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("contact_id", id).Msg("failed to fetch contact")
		return nil, errs.NewInternalServerError("Database error occurred")
	}
	if contact == nil {
		return nil, errs.NewNotFoundError("Contact not found", nil)
	}
	return contact, nil
}

// List counts with the same filter as the page query so meta stays consistent.
func (s *ContactService) List(ctx context.Context, params repository.ListContactsParams) (*ContactPage, error) {
	logger := zerolog.Ctx(ctx)

	total, err := s.store.Count(ctx, params.Status)
	if err != nil {
		logger.Error().Err(err).Msg("failed to count contacts")
		return nil, errs.NewInternalServerError("Database error occurred")
	}

	contacts, err := s.store.List(ctx, params)
	if err != nil {
		logger.Error().Err(err).Int("page", params.Page).Msg("failed to list contacts")
		return nil, errs.NewInternalServerError("Database error occurred")
	}

	return &ContactPage{
		Data: contacts,
		Meta: model.NewPageMeta(params.Page, model.PageSize, total),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
