// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or delete data, abstracting SQL logic away from the service layer.
// Every user-supplied value travels as a bind parameter.
package repository

import (
	"github.com/deppfellow/vecta-backend/internal/database"
	"github.com/deppfellow/vecta-backend/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Task    *TaskRepository
	Contact *ContactRepository
}

// NewRepositories builds every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return NewRepositoriesWithDB(s.DB.Pool)
}

// NewRepositoriesWithDB builds the repositories on any DBTX
// (pool, single connection or transaction).
func NewRepositoriesWithDB(db database.DBTX) *Repositories {
	return &Repositories{
		Task:    NewTaskRepository(db),
		Contact: NewContactRepository(db),
	}
}
