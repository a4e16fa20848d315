// Package mocks holds in-memory implementations of the service
// dependencies for handler, router and service tests.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/vecta-backend/internal/database"
	"github.com/deppfellow/vecta-backend/internal/model"
	"github.com/deppfellow/vecta-backend/internal/repository"
)

// TaskStore keeps tasks in memory and behaves like the tasks table,
// including the unique slug constraint.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]model.Task
	clock time.Time

	// Err, when set, is returned by every method.
	Err error
	// CreateErr, when set, is returned by Create only.
	CreateErr error
	// SkipPreCheck hides existing rows from GetBySlug, which reproduces
	// two writers racing past the duplicate check.
	SkipPreCheck bool
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]model.Task),
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *TaskStore) GetBySlug(_ context.Context, slug string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if s.SkipPreCheck {
		return nil, nil
	}

	task, ok := s.tasks[slug]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (s *TaskStore) Create(_ context.Context, task *model.Task) (database.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return database.WriteResult{}, s.Err
	}
	if s.CreateErr != nil {
		return database.WriteResult{}, s.CreateErr
	}
	if _, exists := s.tasks[task.Slug]; exists {
		return database.WriteResult{}, fmt.Errorf("%w: %w", database.ErrPersistence, &pgconn.PgError{
			Code:           "23505",
			Severity:       "ERROR",
			Message:        "duplicate key value violates unique constraint \"tasks_slug_key\"",
			TableName:      "tasks",
			ConstraintName: "tasks_slug_key",
		})
	}

	s.clock = s.clock.Add(time.Second)
	createdAt := s.clock

	stored := *task
	stored.CreatedAt = &createdAt
	s.tasks[task.Slug] = stored

	return database.WriteResult{Success: true, RowsAffected: 1}, nil
}

func (s *TaskStore) List(_ context.Context, params repository.ListTasksParams) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := []model.Task{}
	for _, task := range s.tasks {
		if params.Completed != nil && task.Completed != *params.Completed {
			continue
		}
		out = append(out, task)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate != out[j].DueDate {
			return out[i].DueDate < out[j].DueDate
		}
		return out[i].CreatedAt.After(*out[j].CreatedAt)
	})

	offset, ok := params.Offset()
	if !ok {
		return []model.Task{}, nil
	}
	return page(out, offset), nil
}

func (s *TaskStore) DeleteBySlug(_ context.Context, slug string) (database.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return database.WriteResult{}, s.Err
	}

	if _, ok := s.tasks[slug]; !ok {
		return database.WriteResult{Success: true}, nil
	}
	delete(s.tasks, slug)

	return database.WriteResult{Success: true, RowsAffected: 1}, nil
}

// Count returns how many tasks are stored under slug (0 or 1).
func (s *TaskStore) Count(slug string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[slug]; ok {
		return 1
	}
	return 0
}

// ContactStore keeps contacts in memory.
type ContactStore struct {
	mu       sync.Mutex
	contacts map[string]model.Contact

	Err error
}

func NewContactStore() *ContactStore {
	return &ContactStore{contacts: make(map[string]model.Contact)}
}

func (s *ContactStore) Create(_ context.Context, contact *model.Contact) (database.WriteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return database.WriteResult{}, s.Err
	}

	s.contacts[contact.ID] = *contact
	return database.WriteResult{Success: true, RowsAffected: 1}, nil
}

func (s *ContactStore) GetByID(_ context.Context, id string) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	contact, ok := s.contacts[id]
	if !ok {
		return nil, nil
	}
	return &contact, nil
}

func (s *ContactStore) Count(_ context.Context, status *model.ContactStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.filter(status))), nil
}

func (s *ContactStore) List(_ context.Context, params repository.ListContactsParams) ([]model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := s.filter(params.Status)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	offset, ok := params.Offset()
	if !ok {
		return []model.Contact{}, nil
	}
	return page(out, offset), nil
}

// Seed stores contacts as they are.
func (s *ContactStore) Seed(contacts ...model.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range contacts {
		s.contacts[c.ID] = c
	}
}

// Len returns the number of stored contacts.
func (s *ContactStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.contacts)
}

func (s *ContactStore) filter(status *model.ContactStatus) []model.Contact {
	out := []model.Contact{}
	for _, c := range s.contacts {
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, c)
	}
	return out
}

func page[T any](rows []T, offset int) []T {
	if offset < 0 || offset >= len(rows) {
		return []T{}
	}
	end := min(offset+model.PageSize, len(rows))
	return rows[offset:end]
}

// Notifier records notifications and optionally fails them.
type Notifier struct {
	mu   sync.Mutex
	Sent []model.Contact
	Err  error
}

func (n *Notifier) SendContactNotification(_ context.Context, contact *model.Contact) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.Sent = append(n.Sent, *contact)
	return n.Err
}
