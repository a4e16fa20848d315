package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/vecta-backend/internal/database"
	"github.com/deppfellow/vecta-backend/internal/errs"
	"github.com/deppfellow/vecta-backend/internal/model"
	"github.com/deppfellow/vecta-backend/internal/repository"
	"github.com/deppfellow/vecta-backend/internal/sqlerr"
)

const taskAlreadyExistsCode = "TASK_ALREADY_EXISTS"

// TaskStore is the persistence the task service needs.
type TaskStore interface {
	GetBySlug(ctx context.Context, slug string) (*model.Task, error)
	Create(ctx context.Context, task *model.Task) (database.WriteResult, error)
	List(ctx context.Context, params repository.ListTasksParams) ([]model.Task, error)
	DeleteBySlug(ctx context.Context, slug string) (database.WriteResult, error)
}

type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// Create inserts task and echoes it back without reading it again.
func (s *TaskService) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	logger := zerolog.Ctx(ctx)

	// Best effort only: two concurrent creates can both pass this check.
	// The UNIQUE constraint on tasks.slug settles that race below.
	existing, err := s.store.GetBySlug(ctx, task.Slug)
	if err != nil {
		logger.Error().Err(err).Str("slug", task.Slug).Msg("failed to look up task slug")
		return nil, errs.NewInternalServerError("Database error occurred")
	}
	if existing != nil {
		return nil, errs.NewConflictError("Task with this slug already exists", taskAlreadyExistsCode)
	}

	if _, err := s.store.Create(ctx, task); err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, errs.NewConflictError("Task with this slug already exists", taskAlreadyExistsCode)
		}
		logger.Error().
			Err(err).
			Str("slug", task.Slug).
			Str("db_error", string(sqlerr.ErrCode(err))).
			Msg("failed to create task")
		return nil, errs.NewInternalServerError("Failed to create task")
	}

	logger.Info().Str("slug", task.Slug).Msg("task created")

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, slug string) (*model.Task, error) {
	task, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("slug", slug).Msg("failed to fetch task")
		return nil, errs.NewInternalServerError("Database error occurred")
	}
	if task == nil {
		return nil, errs.NewNotFoundError("Task not found", nil)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, params repository.ListTasksParams) ([]model.Task, error) {
	tasks, err := s.store.List(ctx, params)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int("page", params.Page).Msg("failed to list tasks")
		return nil, errs.NewInternalServerError("Database error occurred")
	}
	return tasks, nil
}

// Delete removes the task and returns the row as it was before deletion.
func (s *TaskService) Delete(ctx context.Context, slug string) (*model.Task, error) {
	task, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.DeleteBySlug(ctx, slug); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("slug", slug).Msg("failed to delete task")
		return nil, errs.NewInternalServerError("Failed to delete task")
	}

	zerolog.Ctx(ctx).Info().Str("slug", slug).Msg("task deleted")

	return task, nil
}
