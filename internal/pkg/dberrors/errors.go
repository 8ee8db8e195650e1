package dberrors

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

// PostgreSQL error codes the record store reacts to.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
	CodeLockNotAvailable     = "55P03"
	CodeQueryCanceled        = "57014"
	CodeAdminShutdown        = "57P01"
	CodeCannotConnectNow     = "57P03"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation && pgErr.ConstraintName == constraintName
}

// IsDuplicateKeyError checks for any unique violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeUniqueViolation
}

// IsForeignKeyError checks for a foreign key violation.
func IsForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == CodeForeignKeyViolation
}

// IsContention reports lock or serialization contention. A lock_timeout
// surfaces as lock_not_available (55P03).
func IsContention(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case CodeSerializationFailure, CodeDeadlockDetected, CodeLockNotAvailable:
		return true
	}
	return false
}

// IsUnavailable reports failures to reach the database at all.
func IsUnavailable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == CodeAdminShutdown || pgErr.Code == CodeCannotConnectNow
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Classify maps driver errors onto the application taxonomy. Errors that
// already carry an application meaning are returned untouched.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case IsContention(err):
		return fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	case errors.Is(err, context.DeadlineExceeded):
		// transaction timeout while waiting on a lock; checked before
		// IsUnavailable because DeadlineExceeded also satisfies net.Error
		return fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	case IsUnavailable(err):
		return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	return err
}
