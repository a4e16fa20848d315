package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrPersistence marks every failure that came out of the store
// (connectivity, constraint violation, scan). Callers map it to a 500
// unless they recognise the wrapped driver error.
var ErrPersistence = errors.New("persistence error")

// DBTX is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// WriteResult acknowledges an INSERT/UPDATE/DELETE.
type WriteResult struct {
	Success      bool
	RowsAffected int64
}

// First runs a query expected to yield at most one row.
// It returns nil, nil when no row matched.
func First[T any](ctx context.Context, db DBTX, scan pgx.RowToFunc[T], sql string, args ...any) (*T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(err)
	}

	row, err := pgx.CollectOneRow(rows, scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(err)
	}

	return &row, nil
}

// All runs a query and collects every row. The result is never nil.
func All[T any](ctx context.Context, db DBTX, scan pgx.RowToFunc[T], sql string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(err)
	}

	out, err := pgx.CollectRows(rows, scan)
	if err != nil {
		return nil, wrap(err)
	}
	if out == nil {
		out = []T{}
	}

	return out, nil
}

// Run executes a write statement.
func Run(ctx context.Context, db DBTX, sql string, args ...any) (WriteResult, error) {
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return WriteResult{}, wrap(err)
	}

	return WriteResult{Success: true, RowsAffected: tag.RowsAffected()}, nil
}

// wrap keeps the driver error reachable through errors.As while tagging it
// with ErrPersistence.
func wrap(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
