package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/vecta-backend/internal/errs"
	"github.com/deppfellow/vecta-backend/internal/mocks"
	"github.com/deppfellow/vecta-backend/internal/model"
	"github.com/deppfellow/vecta-backend/internal/repository"
)

func requireStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	return httpErr
}

func TestTaskServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("echoes the created task", func(t *testing.T) {
		store := mocks.NewTaskStore()
		svc := NewTaskService(store)

		in := &model.Task{Slug: "report", Name: "Report", DueDate: "2025-05-01"}
		got, err := svc.Create(ctx, in)
		require.NoError(t, err)

		assert.Same(t, in, got)
		assert.Nil(t, got.CreatedAt)
		assert.Equal(t, 1, store.Count("report"))
	})

	t.Run("duplicate slug caught by the pre-check", func(t *testing.T) {
		store := mocks.NewTaskStore()
		svc := NewTaskService(store)

		_, err := svc.Create(ctx, &model.Task{Slug: "report", Name: "Report", DueDate: "2025-05-01"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, &model.Task{Slug: "report", Name: "Other", DueDate: "2025-06-01"})
		httpErr := requireStatus(t, err, http.StatusBadRequest)
		assert.Equal(t, "Task with this slug already exists", httpErr.Message)
		assert.Equal(t, 1, store.Count("report"))
	})

	t.Run("duplicate slug caught by the unique constraint", func(t *testing.T) {
		store := mocks.NewTaskStore()
		svc := NewTaskService(store)

		_, err := svc.Create(ctx, &model.Task{Slug: "report", Name: "Report", DueDate: "2025-05-01"})
		require.NoError(t, err)

		store.SkipPreCheck = true
		_, err = svc.Create(ctx, &model.Task{Slug: "report", Name: "Other", DueDate: "2025-06-01"})
		httpErr := requireStatus(t, err, http.StatusBadRequest)
		assert.Equal(t, "Task with this slug already exists", httpErr.Message)
	})

	t.Run("insert failure", func(t *testing.T) {
		store := mocks.NewTaskStore()
		store.CreateErr = errors.New("connection reset")
		svc := NewTaskService(store)

		_, err := svc.Create(ctx, &model.Task{Slug: "report", Name: "Report", DueDate: "2025-05-01"})
		httpErr := requireStatus(t, err, http.StatusInternalServerError)
		assert.Equal(t, "Failed to create task", httpErr.Message)
	})
}

func TestTaskServiceGetAndDelete(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewTaskStore()
	svc := NewTaskService(store)

	_, err := svc.Create(ctx, &model.Task{Slug: "report", Name: "Report", Completed: true, DueDate: "2025-05-01"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "report")
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.NotNil(t, got.CreatedAt)

	deleted, err := svc.Delete(ctx, "report")
	require.NoError(t, err)
	assert.Equal(t, got, deleted)

	_, err = svc.Get(ctx, "report")
	httpErr := requireStatus(t, err, http.StatusNotFound)
	assert.Equal(t, "Task not found", httpErr.Message)

	_, err = svc.Delete(ctx, "report")
	requireStatus(t, err, http.StatusNotFound)
}

func TestTaskServiceStoreFailure(t *testing.T) {
	store := mocks.NewTaskStore()
	store.Err = errors.New("down")
	svc := NewTaskService(store)

	_, err := svc.List(context.Background(), repository.ListTasksParams{})
	httpErr := requireStatus(t, err, http.StatusInternalServerError)
	assert.Equal(t, "Database error occurred", httpErr.Message)
}

func TestContactServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id status and timestamps", func(t *testing.T) {
		store := mocks.NewContactStore()
		notifier := &mocks.Notifier{}
		svc := NewContactService(store, notifier)

		fixed := time.Date(2025, 4, 1, 1, 30, 0, 123456789, time.UTC)
		svc.now = func() time.Time { return fixed }

		contact, err := svc.Create(ctx, CreateContactInput{
			Name:    "Taro",
			Email:   "taro@example.com",
			Subject: "S",
			Message: "M",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, contact.ID)
		assert.Equal(t, model.ContactStatusNew, contact.Status)
		assert.Nil(t, contact.Phone)
		assert.Nil(t, contact.Company)
		assert.Equal(t, fixed.Truncate(time.Microsecond), contact.CreatedAt)
		assert.Equal(t, contact.CreatedAt, contact.UpdatedAt)

		require.Len(t, notifier.Sent, 1)
		assert.Equal(t, contact.ID, notifier.Sent[0].ID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("notification failure is swallowed", func(t *testing.T) {
		store := mocks.NewContactStore()
		notifier := &mocks.Notifier{Err: errors.New("provider returned 500")}
		svc := NewContactService(store, notifier)

		contact, err := svc.Create(ctx, CreateContactInput{
			Name:    "Taro",
			Email:   "taro@example.com",
			Phone:   "090-0000-0000",
			Subject: "S",
			Message: "M",
		})
		require.NoError(t, err)
		require.NotNil(t, contact.Phone)
		assert.Equal(t, "090-0000-0000", *contact.Phone)

		stored, err := svc.Get(ctx, contact.ID)
		require.NoError(t, err)
		assert.Equal(t, contact.ID, stored.ID)
	})

	t.Run("insert failure skips the notification", func(t *testing.T) {
		store := mocks.NewContactStore()
		store.Err = errors.New("down")
		notifier := &mocks.Notifier{}
		svc := NewContactService(store, notifier)

		_, err := svc.Create(ctx, CreateContactInput{Name: "Taro", Email: "taro@example.com", Subject: "S", Message: "M"})
		httpErr := requireStatus(t, err, http.StatusInternalServerError)
		assert.Equal(t, "Failed to create contact", httpErr.Message)
		assert.Empty(t, notifier.Sent)
	})

	t.Run("cancelled request still notifies", func(t *testing.T) {
		store := mocks.NewContactStore()
		notifier := &cancelAwareNotifier{}
		svc := NewContactService(store, notifier)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.Create(cancelled, CreateContactInput{Name: "Taro", Email: "taro@example.com", Subject: "S", Message: "M"})
		require.NoError(t, err)
		assert.NoError(t, notifier.ctxErr)
	})
}

type cancelAwareNotifier struct {
	ctxErr error
}

func (n *cancelAwareNotifier) SendContactNotification(ctx context.Context, _ *model.Contact) error {
	n.ctxErr = ctx.Err()
	return nil
}

func TestContactServiceList(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewContactStore()
	svc := NewContactService(store, nil)

	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := range 25 {
		status := model.ContactStatusNew
		if i%5 == 0 {
			status = model.ContactStatusCompleted
		}
		store.Seed(model.Contact{
			ID:        string(rune('a' + i)),
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	page1, err := svc.List(ctx, repository.ListContactsParams{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page1.Data, 20)
	assert.Equal(t, model.PageMeta{Page: 1, PerPage: 20, Total: 25, TotalPages: 2}, page1.Meta)
	assert.True(t, page1.Data[0].CreatedAt.After(page1.Data[1].CreatedAt))

	page2, err := svc.List(ctx, repository.ListContactsParams{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Data, 5)

	completed := model.ContactStatusCompleted
	filtered, err := svc.List(ctx, repository.ListContactsParams{Page: 1, Status: &completed})
	require.NoError(t, err)
	assert.Len(t, filtered.Data, 5)
	assert.Equal(t, int64(5), filtered.Meta.Total)
	assert.Equal(t, int64(1), filtered.Meta.TotalPages)
}
