package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// can run standalone or inside a Store transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LockMode selects the row lock taken by a read inside a transaction.
type LockMode int

const (
	LockNone LockMode = iota
	// LockShare blocks writers of the row until commit
	LockShare
	// LockUpdate excludes other lockers of the row until commit
	LockUpdate
)

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func withLock(b squirrel.SelectBuilder, lock LockMode) squirrel.SelectBuilder {
	switch lock {
	case LockShare:
		return b.Suffix("FOR SHARE")
	case LockUpdate:
		return b.Suffix("FOR UPDATE")
	}
	return b
}

// notFound wraps the shared sentinel with the missing entity
func notFound(entity string, id ...int64) error {
	if len(id) == 0 {
		return fmt.Errorf("%s: %w", entity, apperrors.ErrResourceNotFound)
	}
	if len(id) == 1 {
		return fmt.Errorf("%s %d: %w", entity, id[0], apperrors.ErrResourceNotFound)
	}
	return fmt.Errorf("%s %v: %w", entity, id, apperrors.ErrResourceNotFound)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
