package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vecta-backend/internal/model"
	"github.com/deppfellow/vecta-backend/internal/repository"
	"github.com/deppfellow/vecta-backend/internal/server"
	"github.com/deppfellow/vecta-backend/internal/service"
	"github.com/deppfellow/vecta-backend/internal/validation"
)

type CreateTaskRequest struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     string  `json:"due_date" validate:"required,duedate"`
}

func (r *CreateTaskRequest) Validate() error {
	return validation.Struct(r)
}

type TaskSlugRequest struct {
	Slug string `param:"taskSlug" validate:"required"`
}

func (r *TaskSlugRequest) Validate() error {
	return validation.Struct(r)
}

// ListTasksRequest pages are 0-based.
type ListTasksRequest struct {
	Page        int   `query:"page" validate:"min=0"`
	IsCompleted *bool `query:"isCompleted"`
}

// Bind reads the query string; isCompleted stays nil when absent.
func (r *ListTasksRequest) Bind(c echo.Context) error {
	var completed bool

	err := echo.QueryParamsBinder(c).
		Int("page", &r.Page).
		Bool("isCompleted", &completed).
		BindError()
	if err != nil {
		return err
	}

	if c.QueryParam("isCompleted") != "" {
		r.IsCompleted = &completed
	}
	return nil
}

func (r *ListTasksRequest) Validate() error {
	return validation.Struct(r)
}

type TaskResponse struct {
	Success bool        `json:"success"`
	Task    *model.Task `json:"task"`
}

type TaskListResponse struct {
	Success bool         `json:"success"`
	Tasks   []model.Task `json:"tasks"`
}

type DeleteTaskResponse struct {
	Success bool             `json:"success"`
	Result  DeleteTaskResult `json:"result"`
}

type DeleteTaskResult struct {
	Task *model.Task `json:"task"`
}

type TaskHandler struct {
	Handler
	tasks *service.TaskService
}

func NewTaskHandler(s *server.Server, tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{
		Handler: NewHandler(s),
		tasks:   tasks,
	}
}

// CreateTask echoes the submitted task back; it is not re-read from the store.
func (h *TaskHandler) CreateTask(c echo.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	task, err := h.tasks.Create(c.Request().Context(), &model.Task{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return nil, err
	}

	return &TaskResponse{Success: true, Task: task}, nil
}

func (h *TaskHandler) GetTask(c echo.Context, req *TaskSlugRequest) (*TaskResponse, error) {
	task, err := h.tasks.Get(c.Request().Context(), req.Slug)
	if err != nil {
		return nil, err
	}

	return &TaskResponse{Success: true, Task: task}, nil
}

func (h *TaskHandler) ListTasks(c echo.Context, req *ListTasksRequest) (*TaskListResponse, error) {
	tasks, err := h.tasks.List(c.Request().Context(), repository.ListTasksParams{
		Page:      req.Page,
		Completed: req.IsCompleted,
	})
	if err != nil {
		return nil, err
	}

	return &TaskListResponse{Success: true, Tasks: tasks}, nil
}

func (h *TaskHandler) DeleteTask(c echo.Context, req *TaskSlugRequest) (*DeleteTaskResponse, error) {
	task, err := h.tasks.Delete(c.Request().Context(), req.Slug)
	if err != nil {
		return nil, err
	}

	return &DeleteTaskResponse{
		Success: true,
		Result:  DeleteTaskResult{Task: task},
	}, nil
}
