package model

import "time"

// Task is a to-do item addressed by its client-chosen slug.
//
// Completed is stored as a 0/1 SMALLINT and coerced back to a bool on read.
// CreatedAt is nil when the task was echoed back from a create request
// instead of read from the store.
type Task struct {
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	DueDate     string     `json:"due_date"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// CompletedFlag converts the logical flag into its stored form.
func CompletedFlag(completed bool) int16 {
	if completed {
		return 1
	}
	return 0
}
