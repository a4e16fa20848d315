// Package dbtest provides an in-memory database.DBTX for unit tests.
//
// FakeDB records every statement with its arguments and answers queries
// from canned rows, so tests can pin the SQL a repository sends without
// a running PostgreSQL.
package dbtest

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Call is one recorded statement.
type Call struct {
	SQL  string
	Args []any
}

// FakeDB implements database.DBTX.
type FakeDB struct {
	mu sync.Mutex

	// Rows is returned by every Query, one []any per row in column order.
	Rows [][]any

	// QueryErr and ExecErr make the respective call fail.
	QueryErr error
	ExecErr  error

	// RowsAffected is reported by Exec.
	RowsAffected int64

	Calls []Call
}

func (f *FakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.record(sql, args)

	if f.ExecErr != nil {
		return pgconn.CommandTag{}, f.ExecErr
	}
	return pgconn.NewCommandTag(fmt.Sprintf("EXEC %d", f.RowsAffected)), nil
}

func (f *FakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.record(sql, args)

	if f.QueryErr != nil {
		return nil, f.QueryErr
	}
	return NewRows(f.Rows...), nil
}

// LastCall returns the most recent statement.
func (f *FakeDB) LastCall() Call {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.Calls) == 0 {
		return Call{}
	}
	return f.Calls[len(f.Calls)-1]
}

func (f *FakeDB) record(sql string, args []any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, Call{SQL: sql, Args: args})
}

// Rows is a pgx.Rows over fixed values.
type Rows struct {
	data   [][]any
	pos    int
	closed bool
	err    error
}

// NewRows builds Rows; each argument is one row.
func NewRows(rows ...[]any) *Rows {
	return &Rows{data: rows, pos: -1}
}

func (r *Rows) Close() { r.closed = true }

func (r *Rows) Err() error { return r.err }

func (r *Rows) CommandTag() pgconn.CommandTag {
	return pgconn.NewCommandTag(fmt.Sprintf("SELECT %d", len(r.data)))
}

func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *Rows) Next() bool {
	if r.closed || r.err != nil {
		return false
	}
	r.pos++
	if r.pos >= len(r.data) {
		r.closed = true
		return false
	}
	return true
}

// Scan assigns the current row to dest. A value can fill a destination of
// its own type, a pointer to its type, or a type it converts to; nil
// zeroes the destination.
func (r *Rows) Scan(dest ...any) error {
	if r.pos < 0 || r.pos >= len(r.data) {
		return fmt.Errorf("dbtest: scan called without a current row")
	}

	row := r.data[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("dbtest: scan of %d columns into %d destinations", len(row), len(dest))
	}

	for i, d := range dest {
		if err := assign(d, row[i]); err != nil {
			return fmt.Errorf("dbtest: column %d: %w", i, err)
		}
	}
	return nil
}

func (r *Rows) Values() ([]any, error) {
	if r.pos < 0 || r.pos >= len(r.data) {
		return nil, fmt.Errorf("dbtest: no current row")
	}
	return r.data[r.pos], nil
}

func (r *Rows) RawValues() [][]byte { return nil }

func (r *Rows) Conn() *pgx.Conn { return nil }

func assign(dest, value any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("destination %T is not a non-nil pointer", dest)
	}
	target := dv.Elem()

	if value == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(target.Type()):
		target.Set(v)
	case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Type().Elem()):
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(v)
		target.Set(p)
	case v.Type().ConvertibleTo(target.Type()):
		target.Set(v.Convert(target.Type()))
	default:
		return fmt.Errorf("cannot assign %T to %s", value, target.Type())
	}
	return nil
}
