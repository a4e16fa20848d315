package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vecta-backend/internal/model"
	"github.com/deppfellow/vecta-backend/internal/repository"
	"github.com/deppfellow/vecta-backend/internal/server"
	"github.com/deppfellow/vecta-backend/internal/service"
	"github.com/deppfellow/vecta-backend/internal/validation"
)

// CreateContactRequest has no status field: a submitter cannot pick one.
type CreateContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (r *CreateContactRequest) Validate() error {
	return validation.Struct(r)
}

type ContactIDRequest struct {
	ID string `param:"contactId" validate:"required"`
}

func (r *ContactIDRequest) Validate() error {
	return validation.Struct(r)
}

// ListContactsRequest pages are 1-based.
type ListContactsRequest struct {
	Page   int    `query:"page" validate:"min=1"`
	Status string `query:"status"`
}

func (r *ListContactsRequest) Bind(c echo.Context) error {
	r.Page = 1
	return echo.QueryParamsBinder(c).
		Int("page", &r.Page).
		String("status", &r.Status).
		BindError()
}

func (r *ListContactsRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if r.Status != "" && !model.ContactStatus(r.Status).IsValid() {
		return validation.CustomValidationErrors{{
			Field:   "status",
			Message: "must be one of: new in_progress completed",
		}}
	}
	return nil
}

func (r *ListContactsRequest) params() repository.ListContactsParams {
	params := repository.ListContactsParams{Page: r.Page}
	if r.Status != "" {
		status := model.ContactStatus(r.Status)
		params.Status = &status
	}
	return params
}

type ContactResponse struct {
	Success bool           `json:"success"`
	Data    *model.Contact `json:"data"`
}

type ContactListResponse struct {
	Success bool            `json:"success"`
	Data    []model.Contact `json:"data"`
	Meta    model.PageMeta  `json:"meta"`
}

type ContactHandler struct {
	Handler
	contacts *service.ContactService
}

func NewContactHandler(s *server.Server, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:  NewHandler(s),
		contacts: contacts,
	}
}

func (h *ContactHandler) CreateContact(c echo.Context, req *CreateContactRequest) (*ContactResponse, error) {
	contact, err := h.contacts.Create(c.Request().Context(), service.CreateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return nil, err
	}

	return &ContactResponse{Success: true, Data: contact}, nil
}

func (h *ContactHandler) GetContact(c echo.Context, req *ContactIDRequest) (*ContactResponse, error) {
	contact, err := h.contacts.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return &ContactResponse{Success: true, Data: contact}, nil
}

func (h *ContactHandler) ListContacts(c echo.Context, req *ListContactsRequest) (*ContactListResponse, error) {
	page, err := h.contacts.List(c.Request().Context(), req.params())
	if err != nil {
		return nil, err
	}

	return &ContactListResponse{
		Success: true,
		Data:    page.Data,
		Meta:    page.Meta,
	}, nil
}
