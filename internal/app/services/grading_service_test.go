package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/grading"
)

func TestAssignGradesDerivesTotalAndLetter(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	_, err := e.enrollment.Enroll(ctx, 10, 1)
	require.NoError(t, err)

	scores := grading.Scores{Assignment1: 5, Assignment2: 4, Quiz1: 5, Quiz2: 3, Mid: 25, Final: 40}
	grade, err := e.grading.AssignGrades(ctx, 10, 1, scores)
	require.NoError(t, err)
	assert.Equal(t, 82, grade.TotalMarks)
	assert.Equal(t, "B", grade.Letter)
	assert.Equal(t, fixedNow, grade.UpdatedAt)

	stored, ok := e.store.Grade(10, 1)
	require.True(t, ok)
	assert.Equal(t, *grade, stored)
}

func TestAssignGradesReplacesPreviousGrade(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	_, err := e.enrollment.Enroll(ctx, 10, 1)
	require.NoError(t, err)

	_, err = e.grading.AssignGrades(ctx, 10, 1, scoresFor(55))
	require.NoError(t, err)
	_, err = e.grading.AssignGrades(ctx, 10, 1, scoresFor(91))
	require.NoError(t, err)

	grades, err := e.store.ListCourseGrades(ctx, 1)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, 91, grades[10].TotalMarks)
	assert.Equal(t, "A", grades[10].Letter)
}

func TestAssignGradesRejections(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	_, err := e.enrollment.Enroll(ctx, 10, 1)
	require.NoError(t, err)

	_, err = e.grading.AssignGrades(ctx, 11, 1, scoresFor(80))
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)

	_, err = e.grading.AssignGrades(ctx, 10, 1, grading.Scores{Mid: 31})
	assert.ErrorIs(t, err, apperrors.ErrInvalidScore)

	_, err = e.grading.AssignGrades(ctx, 10, 1, grading.Scores{Quiz1: -1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidScore)

	_, ok := e.store.Grade(10, 1)
	assert.False(t, ok)
}

func TestAssignGradesAfterCloseKeepsStatus(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	_, err := e.enrollment.Enroll(ctx, 10, 1)
	require.NoError(t, err)
	_, err = e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)

	grade, err := e.grading.AssignGrades(ctx, 10, 1, scoresFor(97))
	require.NoError(t, err)
	assert.Equal(t, "A", grade.Letter)

	enr, _ := e.store.Enrollment(10, 1)
	assert.Equal(t, models.EnrollmentFailed, enr.Status)
}
