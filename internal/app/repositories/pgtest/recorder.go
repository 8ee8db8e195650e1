// Package pgtest records the statements repositories send to PostgreSQL
// and answers them with canned results.
package pgtest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrQueryNotStubbed is returned by Query when no error was configured
var ErrQueryNotStubbed = errors.New("pgtest: multi-row queries are not stubbed")

// Call is one recorded statement
type Call struct {
	SQL  string
	Args []any
}

// Recorder is a repositories.DBTX that keeps every statement it receives
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	// ExecTag and ExecErr answer Exec
	ExecTag pgconn.CommandTag
	ExecErr error
	// QueryErr answers Query; nil means ErrQueryNotStubbed
	QueryErr error
	// RowValues are copied into the Scan destinations of QueryRow, in order,
	// unless RowErr is set
	RowValues []any
	RowErr    error
}

// Exec records the statement
func (r *Recorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.record(sql, args)
	return r.ExecTag, r.ExecErr
}

// Query records the statement
func (r *Recorder) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.record(sql, args)
	if r.QueryErr != nil {
		return nil, r.QueryErr
	}
	return nil, ErrQueryNotStubbed
}

// QueryRow records the statement
func (r *Recorder) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r.record(sql, args)
	return row{values: r.RowValues, err: r.RowErr}
}

func (r *Recorder) record(sql string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{SQL: normalize(sql), Args: args})
}

// Calls returns the recorded statements in order
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Last returns the most recent statement
func (r *Recorder) Last() Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}
	}
	return r.calls[len(r.calls)-1]
}

// normalize collapses whitespace so multi-line suffixes compare as one line
func normalize(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}

type row struct {
	values []any
	err    error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		if i >= len(r.values) {
			break
		}
		target := reflect.ValueOf(d).Elem()
		value := reflect.ValueOf(r.values[i])
		if !value.IsValid() {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		if !value.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("pgtest: cannot scan %s into %s", value.Type(), target.Type())
		}
		target.Set(value)
	}
	return nil
}
