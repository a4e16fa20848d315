package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/vecta-backend/internal/database"
	"github.com/deppfellow/vecta-backend/internal/model"
)

const taskColumns = "slug, name, description, completed, due_date, created_at"

// ListTasksParams filters and pages GET /tasks. Page is 0-based.
type ListTasksParams struct {
	Page      int
	Completed *bool
}

// Offset of the first row of the page. ok is false for pages too far out
// to be addressed, which hold no rows.
func (p ListTasksParams) Offset() (offset int, ok bool) {
	return model.PageOffset(p.Page)
}

type TaskRepository struct {
	db database.DBTX
}

func NewTaskRepository(db database.DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

// GetBySlug returns nil, nil when no task has that slug.
func (r *TaskRepository) GetBySlug(ctx context.Context, slug string) (*model.Task, error) {
	return database.First(ctx, r.db, scanTask,
		`SELECT `+taskColumns+` FROM tasks WHERE slug = $1`,
		slug,
	)
}

// Create inserts the task; created_at is assigned by the store.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) (database.WriteResult, error) {
	return database.Run(ctx, r.db,
		`INSERT INTO tasks (slug, name, description, completed, due_date) VALUES ($1, $2, $3, $4, $5)`,
		task.Slug,
		task.Name,
		task.Description,
		model.CompletedFlag(task.Completed),
		task.DueDate,
	)
}

// List orders by due_date ascending, newest first among equal due dates.
func (r *TaskRepository) List(ctx context.Context, params ListTasksParams) ([]model.Task, error) {
	offset, ok := params.Offset()
	if !ok {
		return []model.Task{}, nil
	}

	var (
		query strings.Builder
		args  []any
	)

	query.WriteString(`SELECT ` + taskColumns + ` FROM tasks`)

	if params.Completed != nil {
		args = append(args, model.CompletedFlag(*params.Completed))
		fmt.Fprintf(&query, " WHERE completed = $%d", len(args))
	}

	query.WriteString(" ORDER BY due_date ASC, created_at DESC")

	args = append(args, model.PageSize, offset)
	fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return database.All(ctx, r.db, scanTask, query.String(), args...)
}

func (r *TaskRepository) DeleteBySlug(ctx context.Context, slug string) (database.WriteResult, error) {
	return database.Run(ctx, r.db, `DELETE FROM tasks WHERE slug = $1`, slug)
}

func scanTask(row pgx.CollectableRow) (model.Task, error) {
	var (
		task      model.Task
		completed int16
		createdAt time.Time
	)

	if err := row.Scan(&task.Slug, &task.Name, &task.Description, &completed, &task.DueDate, &createdAt); err != nil {
		return model.Task{}, err
	}

	task.Completed = completed != 0
	task.CreatedAt = &createdAt

	return task, nil
}
