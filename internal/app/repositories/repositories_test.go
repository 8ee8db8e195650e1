package repositories

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/repositories/pgtest"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/dberrors"
)

func assertLockClause(t *testing.T, sql string, lock LockMode) {
	t.Helper()
	switch lock {
	case LockShare:
		assert.True(t, strings.HasSuffix(sql, " FOR SHARE"), sql)
	case LockUpdate:
		assert.True(t, strings.HasSuffix(sql, " FOR UPDATE"), sql)
	default:
		assert.NotContains(t, sql, " FOR ")
	}
}

func TestReadsTakeRequestedRowLock(t *testing.T) {
	ctx := context.Background()

	reads := map[string]func(db DBTX, lock LockMode) error{
		"course": func(db DBTX, lock LockMode) error {
			_, err := NewCourseRepository(db).GetByID(ctx, 1, lock)
			return err
		},
		"instructor": func(db DBTX, lock LockMode) error {
			_, err := NewInstructorRepository(db).GetByID(ctx, 100, lock)
			return err
		},
		"enrollment": func(db DBTX, lock LockMode) error {
			_, err := NewEnrollmentRepository(db).Get(ctx, 10, 1, lock)
			return err
		},
		"course enrollments": func(db DBTX, lock LockMode) error {
			_, err := NewEnrollmentRepository(db).ListByCourse(ctx, 1, lock)
			return err
		},
	}

	for name, read := range reads {
		for _, lock := range []LockMode{LockNone, LockShare, LockUpdate} {
			rec := &pgtest.Recorder{RowErr: pgx.ErrNoRows, QueryErr: pgx.ErrNoRows}
			_ = read(rec, lock)

			calls := rec.Calls()
			require.Len(t, calls, 1, name)
			assertLockClause(t, calls[0].SQL, lock)
		}
	}
}

func TestLockedReadOfMissingRowIsNotFound(t *testing.T) {
	rec := &pgtest.Recorder{RowErr: pgx.ErrNoRows}

	_, err := NewCourseRepository(rec).GetByID(context.Background(), 7, LockUpdate)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, []any{int64(7)}, rec.Last().Args)
}

func TestTeachesReplaceIsConditionalUpsert(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	rec := &pgtest.Recorder{ExecTag: pgconn.NewCommandTag("INSERT 0 1")}
	changed, err := NewTeachesRepository(rec).Replace(ctx, 1, 100, at)
	require.NoError(t, err)
	assert.True(t, changed)

	call := rec.Last()
	assert.True(t, strings.HasPrefix(call.SQL, "INSERT INTO teaches (course_id,instructor_id,assigned_at) VALUES ($1,$2,$3)"), call.SQL)
	assert.Contains(t, call.SQL, "ON CONFLICT (course_id) DO UPDATE SET instructor_id = EXCLUDED.instructor_id, assigned_at = EXCLUDED.assigned_at")
	assert.True(t, strings.HasSuffix(call.SQL, "WHERE teaches.instructor_id <> EXCLUDED.instructor_id"), call.SQL)
	assert.Equal(t, []any{int64(1), int64(100), at}, call.Args)

	// the WHERE clause suppresses the update when the instructor is unchanged
	rec.ExecTag = pgconn.NewCommandTag("INSERT 0 0")
	changed, err = NewTeachesRepository(rec).Replace(ctx, 1, 100, at)
	require.NoError(t, err)
	assert.False(t, changed)

	rec.ExecErr = &pgconn.PgError{Code: dberrors.CodeForeignKeyViolation, ConstraintName: "teaches_instructor_id_fkey"}
	_, err = NewTeachesRepository(rec).Replace(ctx, 1, 404, at)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestTeachesDeleteReportsRemoval(t *testing.T) {
	rec := &pgtest.Recorder{ExecTag: pgconn.NewCommandTag("DELETE 1")}
	removed, err := NewTeachesRepository(rec).DeleteByCourse(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, "DELETE FROM teaches WHERE course_id = $1", rec.Last().SQL)

	rec.ExecTag = pgconn.NewCommandTag("DELETE 0")
	removed, err = NewTeachesRepository(rec).DeleteByCourse(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestEnrollmentCreateMapsConstraintErrors(t *testing.T) {
	enrollment := &models.Enrollment{StudentID: 10, CourseID: 1, Status: models.EnrollmentInProgress}

	tests := []struct {
		name    string
		execErr error
		want    error
	}{
		{
			name:    "pair already enrolled",
			execErr: &pgconn.PgError{Code: dberrors.CodeUniqueViolation, ConstraintName: constraintEnrollmentPKey},
			want:    apperrors.ErrDuplicateEnrollment,
		},
		{
			name:    "missing student or course",
			execErr: &pgconn.PgError{Code: dberrors.CodeForeignKeyViolation, ConstraintName: "enrollments_student_id_fkey"},
			want:    apperrors.ErrResourceNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &pgtest.Recorder{ExecErr: tt.execErr}
			err := NewEnrollmentRepository(rec).Create(context.Background(), enrollment)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, strings.HasPrefix(rec.Last().SQL, "INSERT INTO enrollments"), rec.Last().SQL)
		})
	}

	t.Run("other unique constraint", func(t *testing.T) {
		rec := &pgtest.Recorder{ExecErr: &pgconn.PgError{Code: dberrors.CodeUniqueViolation, ConstraintName: "other_key"}}
		err := NewEnrollmentRepository(rec).Create(context.Background(), enrollment)
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrDuplicateEnrollment)
	})

	t.Run("contention passes through for classification", func(t *testing.T) {
		rec := &pgtest.Recorder{ExecErr: &pgconn.PgError{Code: dberrors.CodeLockNotAvailable}}
		err := NewEnrollmentRepository(rec).Create(context.Background(), enrollment)
		assert.ErrorIs(t, dberrors.Classify(err), apperrors.ErrConflict)
	})
}

func TestEnrollmentUpdateStatusOfMissingRow(t *testing.T) {
	rec := &pgtest.Recorder{ExecTag: pgconn.NewCommandTag("UPDATE 0")}
	err := NewEnrollmentRepository(rec).UpdateStatus(context.Background(), 10, 1, models.EnrollmentPassed)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.True(t, strings.HasPrefix(rec.Last().SQL, "UPDATE enrollments SET status = $1 WHERE"), rec.Last().SQL)
}

func TestCourseUpdateLastInstructor(t *testing.T) {
	rec := &pgtest.Recorder{ExecTag: pgconn.NewCommandTag("UPDATE 1")}
	require.NoError(t, NewCourseRepository(rec).UpdateLastInstructor(context.Background(), 1, 100))
	assert.Equal(t, "UPDATE courses SET last_instructor_id = $1 WHERE id = $2", rec.Last().SQL)
	assert.Equal(t, []any{int64(100), int64(1)}, rec.Last().Args)

	rec.ExecTag = pgconn.NewCommandTag("UPDATE 0")
	assert.ErrorIs(t, NewCourseRepository(rec).UpdateLastInstructor(context.Background(), 9, 100), apperrors.ErrResourceNotFound)
}

func TestCourseUpdateLeavesAvailabilityAlone(t *testing.T) {
	last := int64(100)
	rec := &pgtest.Recorder{RowValues: []any{models.AvailabilityClosed, &last}}
	course := &models.Course{ID: 1, DepartmentID: 2, Code: "CS102", Title: "Data Structures", Credits: 4}

	require.NoError(t, NewCourseRepository(rec).Update(context.Background(), course))
	sql := rec.Last().SQL
	assert.Equal(t,
		"UPDATE courses SET department_id = $1, code = $2, title = $3, credits = $4 WHERE id = $5 RETURNING availability, last_instructor_id",
		sql)
	assert.Equal(t, models.AvailabilityClosed, course.Availability)
	require.NotNil(t, course.LastInstructorID)
	assert.Equal(t, int64(100), *course.LastInstructorID)

	tests := []struct {
		name   string
		rowErr error
		want   error
	}{
		{"missing course", pgx.ErrNoRows, apperrors.ErrResourceNotFound},
		{"duplicate code", &pgconn.PgError{Code: dberrors.CodeUniqueViolation, ConstraintName: constraintCourseCode}, apperrors.ErrCourseAlreadyExists},
		{"missing department", &pgconn.PgError{Code: dberrors.CodeForeignKeyViolation}, apperrors.ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &pgtest.Recorder{RowErr: tt.rowErr}
			assert.ErrorIs(t, NewCourseRepository(rec).Update(context.Background(), course), tt.want)
		})
	}
}

func TestPeopleUpdates(t *testing.T) {
	ctx := context.Background()

	rec := &pgtest.Recorder{ExecTag: pgconn.NewCommandTag("UPDATE 1")}
	require.NoError(t, NewInstructorRepository(rec).Update(ctx, &models.Instructor{ID: 100, Name: "Ada", FacultyType: "Visiting", DepartmentID: 1}))
	assert.True(t, strings.HasPrefix(rec.Last().SQL, "UPDATE instructors SET name = $1"), rec.Last().SQL)

	require.NoError(t, NewStudentRepository(rec).Update(ctx, &models.Student{ID: 10, Name: "Alan", DepartmentID: 1}))
	assert.True(t, strings.HasPrefix(rec.Last().SQL, "UPDATE students SET name = $1"), rec.Last().SQL)

	rec.ExecTag = pgconn.NewCommandTag("UPDATE 0")
	assert.ErrorIs(t, NewInstructorRepository(rec).Update(ctx, &models.Instructor{ID: 404}), apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, NewStudentRepository(rec).Update(ctx, &models.Student{ID: 404}), apperrors.ErrResourceNotFound)

	rec.ExecErr = &pgconn.PgError{Code: dberrors.CodeForeignKeyViolation}
	assert.ErrorIs(t, NewStudentRepository(rec).Update(ctx, &models.Student{ID: 10, DepartmentID: 99}), apperrors.ErrResourceNotFound)
}
