package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/vecta-backend/internal/database"
	"github.com/deppfellow/vecta-backend/internal/model"
)

const contactColumns = "id, name, email, phone, company, subject, message, status, created_at, updated_at"

// ListContactsParams filters and pages GET /contacts. Page is 1-based.
type ListContactsParams struct {
	Page   int
	Status *model.ContactStatus
}

// Offset of the first row of the page. ok is false for pages too far out
// to be addressed, which hold no rows.
func (p ListContactsParams) Offset() (offset int, ok bool) {
	return model.PageOffset(p.Page - 1)
}

type ContactRepository struct {
	db database.DBTX
}

func NewContactRepository(db database.DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *model.Contact) (database.WriteResult, error) {
	return database.Run(ctx, r.db,
		`INSERT INTO contacts (`+contactColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Company,
		c.Subject,
		c.Message,
		string(c.Status),
		c.CreatedAt,
		c.UpdatedAt,
	)
}

// GetByID returns nil, nil when the contact does not exist.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	return database.First(ctx, r.db, scanContact,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1`,
		id,
	)
}

// Count applies the same status predicate as List.
func (r *ContactRepository) Count(ctx context.Context, status *model.ContactStatus) (int64, error) {
	where, args := contactFilter(status)

	total, err := database.First(ctx, r.db, pgx.RowTo[int64], `SELECT COUNT(*) FROM contacts`+where, args...)
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// List returns one page ordered by created_at, newest first.
func (r *ContactRepository) List(ctx context.Context, params ListContactsParams) ([]model.Contact, error) {
	offset, ok := params.Offset()
	if !ok {
		return []model.Contact{}, nil
	}

	where, args := contactFilter(params.Status)

	var query strings.Builder
	query.WriteString(`SELECT ` + contactColumns + ` FROM contacts`)
	query.WriteString(where)
	query.WriteString(" ORDER BY created_at DESC")

	args = append(args, model.PageSize, offset)
	fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return database.All(ctx, r.db, scanContact, query.String(), args...)
}

func contactFilter(status *model.ContactStatus) (string, []any) {
	if status == nil {
		return "", nil
	}
	return " WHERE status = $1", []any{string(*status)}
}

func scanContact(row pgx.CollectableRow) (model.Contact, error) {
	var (
		c      model.Contact
		status string
	)

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Company,
		&c.Subject,
		&c.Message,
		&status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return model.Contact{}, err
	}

	c.Status = model.ContactStatus(status)
	return c, nil
}
