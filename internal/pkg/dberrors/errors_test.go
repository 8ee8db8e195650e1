package dberrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

func TestClassify(t *testing.T) {
	domainErr := fmt.Errorf("enroll: %w", apperrors.ErrCourseClosed)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: CodeSerializationFailure}, want: apperrors.ErrConflict},
		{name: "deadlock", err: &pgconn.PgError{Code: CodeDeadlockDetected}, want: apperrors.ErrConflict},
		{name: "lock timeout", err: &pgconn.PgError{Code: CodeLockNotAvailable}, want: apperrors.ErrConflict},
		{name: "deadline", err: context.DeadlineExceeded, want: apperrors.ErrConflict},
		{name: "admin shutdown", err: &pgconn.PgError{Code: CodeAdminShutdown}, want: apperrors.ErrStoreUnavailable},
		{name: "domain error untouched", err: domainErr, want: apperrors.ErrCourseClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.True(t, errors.Is(got, tt.want), "Classify(%v) = %v, want %v", tt.err, got, tt.want)
		})
	}

	assert.NoError(t, Classify(nil))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "enrollments_pkey"})

	assert.True(t, IsDuplicateConstraintError(err, "enrollments_pkey"))
	assert.False(t, IsDuplicateConstraintError(err, "grades_pkey"))
	assert.True(t, IsDuplicateKeyError(err))
	assert.False(t, IsForeignKeyError(err))
}
