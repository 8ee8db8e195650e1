package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

func seeded() *Store {
	s := New()
	s.PutCourse(models.Course{ID: 1, Code: "CS101", Title: "Programming"})
	s.PutStudent(models.Student{ID: 10, Name: "Alan"})
	s.PutInstructor(models.Instructor{ID: 100, Name: "Ada"})
	return s
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	err := s.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		return tx.CreateEnrollment(ctx, &models.Enrollment{StudentID: 10, CourseID: 1, Status: models.EnrollmentInProgress})
	})
	require.NoError(t, err)

	e, ok := s.Enrollment(10, 1)
	require.True(t, ok)
	assert.Equal(t, models.EnrollmentInProgress, e.Status)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := seeded()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		if err := tx.SetCourseAvailability(ctx, 1, models.AvailabilityClosed); err != nil {
			return err
		}
		if _, err := tx.ReplaceTeaches(ctx, 1, 100, time.Now()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, _ := s.Course(1)
	assert.Equal(t, models.AvailabilityOpen, c.Availability)
	_, assigned := s.Teaches(1)
	assert.False(t, assigned)
}

func TestFailOn(t *testing.T) {
	s := seeded()
	ctx := context.Background()
	injected := errors.New("injected")
	s.FailOn("UpsertGrade", injected)

	err := s.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		return tx.UpsertGrade(ctx, &models.Grade{StudentID: 10, CourseID: 1})
	})
	assert.ErrorIs(t, err, injected)

	s.FailOn("UpsertGrade", nil)
	s.PutEnrollment(models.Enrollment{StudentID: 10, CourseID: 1, Status: models.EnrollmentInProgress})
	err = s.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		return tx.UpsertGrade(ctx, &models.Grade{StudentID: 10, CourseID: 1, Letter: "A"})
	})
	require.NoError(t, err)
	g, ok := s.Grade(10, 1)
	require.True(t, ok)
	assert.Equal(t, "A", g.Letter)
}

func TestCreateEnrollmentDuplicate(t *testing.T) {
	s := seeded()
	s.PutEnrollment(models.Enrollment{StudentID: 10, CourseID: 1, Status: models.EnrollmentPassed})

	err := s.WithTx(context.Background(), func(ctx context.Context, tx repositories.Tx) error {
		return tx.CreateEnrollment(ctx, &models.Enrollment{StudentID: 10, CourseID: 1, Status: models.EnrollmentInProgress})
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEnrollment)

	e, _ := s.Enrollment(10, 1)
	assert.Equal(t, models.EnrollmentPassed, e.Status)
}

func TestReplaceTeaches(t *testing.T) {
	s := seeded()
	s.PutInstructor(models.Instructor{ID: 101, Name: "Grace"})
	ctx := context.Background()

	replace := func(instructorID int64) (changed bool, err error) {
		err = s.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
			changed, err = tx.ReplaceTeaches(ctx, 1, instructorID, time.Now())
			return err
		})
		return changed, err
	}

	changed, err := replace(100)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = replace(100)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = replace(101)
	require.NoError(t, err)
	assert.True(t, changed)
	row, _ := s.Teaches(1)
	assert.Equal(t, int64(101), row.InstructorID)

	_, err = replace(999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestDeleteInstructorCascadesTeaches(t *testing.T) {
	s := seeded()
	require.NoError(t, s.WithTx(context.Background(), func(ctx context.Context, tx repositories.Tx) error {
		_, err := tx.ReplaceTeaches(ctx, 1, 100, time.Now())
		return err
	}))

	s.DeleteInstructor(100)

	_, ok := s.Teaches(1)
	assert.False(t, ok)
}

func TestWithTxCanceledContext(t *testing.T) {
	s := seeded()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithTx(ctx, func(context.Context, repositories.Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.False(t, called)
}

func TestListCoursesFilters(t *testing.T) {
	s := seeded()
	s.PutCourse(models.Course{ID: 2, Code: "CS102", Title: "Data Structures"})
	s.PutEnrollment(models.Enrollment{StudentID: 10, CourseID: 1, Status: models.EnrollmentInProgress})
	ctx := context.Background()
	require.NoError(t, s.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		if err := tx.SetCourseAvailability(ctx, 2, models.AvailabilityClosed); err != nil {
			return err
		}
		_, err := tx.ReplaceTeaches(ctx, 1, 100, time.Now())
		return err
	}))

	all, err := s.ListCourses(ctx, repositories.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].StudentsEnrolled)
	require.NotNil(t, all[0].InstructorID)
	assert.Equal(t, "Ada", *all[0].InstructorName)
	assert.Nil(t, all[1].InstructorID)

	open, err := s.ListCourses(ctx, repositories.CourseFilter{OnlyOpen: true})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, int64(1), open[0].ID)

	taught, err := s.ListCourses(ctx, repositories.CourseFilter{InstructorID: 100})
	require.NoError(t, err)
	require.Len(t, taught, 1)
	assert.Equal(t, int64(1), taught[0].ID)

	none, err := s.ListCourses(ctx, repositories.CourseFilter{InstructorID: 101})
	require.NoError(t, err)
	assert.Empty(t, none)
}
