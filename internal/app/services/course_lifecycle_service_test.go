package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/grading"
)

func TestDeriveEnrollmentStatus(t *testing.T) {
	policy := grading.DefaultPolicy()

	tests := []struct {
		name  string
		grade *models.Grade
		want  models.EnrollmentStatus
	}{
		{"no grade", nil, models.EnrollmentFailed},
		{"failing letter", &models.Grade{Letter: "F"}, models.EnrollmentFailed},
		{"passing letter", &models.Grade{Letter: "A"}, models.EnrollmentPassed},
		{"lowest pass", &models.Grade{Letter: "D"}, models.EnrollmentPassed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveEnrollmentStatus(tt.grade, policy))
		})
	}
}

func TestCloseFinalizesEnrollments(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	for _, sid := range []int64{10, 11, 12} {
		_, err := e.enrollment.Enroll(ctx, sid, 1)
		require.NoError(t, err)
	}
	_, err := e.grading.AssignGrades(ctx, 10, 1, scoresFor(95))
	require.NoError(t, err)
	_, err = e.grading.AssignGrades(ctx, 12, 1, scoresFor(40))
	require.NoError(t, err)
	_, err = e.assignment.Assign(ctx, 100, 1)
	require.NoError(t, err)

	result, err := e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityOpen, result.Previous)
	assert.Equal(t, models.AvailabilityClosed, result.Availability)
	assert.Equal(t, 3, result.FinalizedCount)
	assert.True(t, result.InstructorUnassigned)

	want := map[int64]models.EnrollmentStatus{
		10: models.EnrollmentPassed,
		11: models.EnrollmentFailed,
		12: models.EnrollmentFailed,
	}
	for sid, status := range want {
		enr, ok := e.store.Enrollment(sid, 1)
		require.True(t, ok)
		assert.Equal(t, status, enr.Status, "student %d", sid)
	}

	course, _ := e.store.Course(1)
	assert.Equal(t, models.AvailabilityClosed, course.Availability)
	require.NotNil(t, course.LastInstructorID)
	assert.Equal(t, int64(100), *course.LastInstructorID)
	_, assigned := e.store.Teaches(1)
	assert.False(t, assigned)
}

func TestCloseIsIdempotent(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.enrollment.Enroll(ctx, 10, 1)
	require.NoError(t, err)

	_, err = e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)
	first, _ := e.store.Enrollment(10, 1)

	// a grade recorded after closure must not leak into a repeated close
	_, err = e.grading.AssignGrades(ctx, 10, 1, scoresFor(100))
	require.NoError(t, err)

	result, err := e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityClosed, result.Previous)
	assert.Zero(t, result.FinalizedCount)
	assert.False(t, result.InstructorUnassigned)

	second, _ := e.store.Enrollment(10, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, models.EnrollmentFailed, second.Status)
}

func TestReopenDoesNotTouchEnrollments(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.enrollment.Enroll(ctx, 10, 1)
	require.NoError(t, err)
	_, err = e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)
	before, _ := e.store.Enrollment(10, 1)

	result, err := e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityOpen)
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityOpen, result.Availability)
	assert.Zero(t, result.FinalizedCount)

	after, _ := e.store.Enrollment(10, 1)
	assert.Equal(t, before, after)
	_, assigned := e.store.Teaches(1)
	assert.False(t, assigned)
}

func TestReclosureFinalizesOnlyNewEnrollments(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.enrollment.Enroll(ctx, 10, 1)
	require.NoError(t, err)
	_, err = e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)
	_, err = e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityOpen)
	require.NoError(t, err)

	_, err = e.grading.AssignGrades(ctx, 10, 1, scoresFor(99))
	require.NoError(t, err)
	_, err = e.enrollment.Enroll(ctx, 11, 1)
	require.NoError(t, err)
	_, err = e.grading.AssignGrades(ctx, 11, 1, scoresFor(85))
	require.NoError(t, err)

	result, err := e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FinalizedCount)

	first, _ := e.store.Enrollment(10, 1)
	assert.Equal(t, models.EnrollmentFailed, first.Status)
	second, _ := e.store.Enrollment(11, 1)
	assert.Equal(t, models.EnrollmentPassed, second.Status)
}

func TestCloseRollsBackOnFailure(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	for _, sid := range []int64{10, 11} {
		_, err := e.enrollment.Enroll(ctx, sid, 1)
		require.NoError(t, err)
	}
	_, err := e.assignment.Assign(ctx, 100, 1)
	require.NoError(t, err)

	boom := errors.New("disk on fire")
	e.store.FailOn("UpdateEnrollmentStatus", boom)

	_, err = e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	assert.ErrorIs(t, err, boom)

	course, _ := e.store.Course(1)
	assert.Equal(t, models.AvailabilityOpen, course.Availability)
	teaches, assigned := e.store.Teaches(1)
	require.True(t, assigned)
	assert.Equal(t, int64(100), teaches.InstructorID)
	for _, sid := range []int64{10, 11} {
		enr, _ := e.store.Enrollment(sid, 1)
		assert.Equal(t, models.EnrollmentInProgress, enr.Status)
	}

	e.store.FailOn("UpdateEnrollmentStatus", nil)
	result, err := e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)
	assert.Equal(t, 2, result.FinalizedCount)
}

func TestSetAvailabilityErrors(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.lifecycle.SetAvailability(ctx, 999, models.AvailabilityClosed)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = e.lifecycle.SetAvailability(ctx, 1, models.Availability("Archived"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCloseWithoutInstructorRecordsNoLastInstructor(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	result, err := e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)
	assert.False(t, result.InstructorUnassigned)

	course, _ := e.store.Course(1)
	assert.Nil(t, course.LastInstructorID)
}

func TestFailedLastInstructorWriteRollsBackClosure(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	_, err := e.assignment.Assign(ctx, 100, 1)
	require.NoError(t, err)

	e.store.FailOn("SetCourseLastInstructor", errors.New("disk full"))
	_, err = e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.Error(t, err)
	e.store.FailOn("SetCourseLastInstructor", nil)

	course, _ := e.store.Course(1)
	assert.Equal(t, models.AvailabilityOpen, course.Availability)
	assert.Nil(t, course.LastInstructorID)
	teaches, assigned := e.store.Teaches(1)
	require.True(t, assigned)
	assert.Equal(t, int64(100), teaches.InstructorID)
}
