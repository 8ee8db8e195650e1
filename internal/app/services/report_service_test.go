package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

func enrolledEngine(t *testing.T) *engine {
	t.Helper()
	e := newEngine()
	ctx := context.Background()
	for _, sid := range []int64{10, 11} {
		_, err := e.enrollment.Enroll(ctx, sid, 1)
		require.NoError(t, err)
	}
	_, err := e.grading.AssignGrades(ctx, 10, 1, scoresFor(88))
	require.NoError(t, err)
	return e
}

func TestCourseRoster(t *testing.T) {
	e := enrolledEngine(t)

	roster, err := e.report.CourseRoster(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, roster, 2)

	byID := map[int64]*models.RosterEntry{}
	for _, r := range roster {
		byID[r.StudentID] = r
	}
	require.NotNil(t, byID[10].Grade)
	assert.Equal(t, "B", byID[10].Grade.Letter)
	assert.Equal(t, "Alan", byID[10].StudentName)
	assert.Nil(t, byID[11].Grade)
	assert.Equal(t, models.EnrollmentInProgress, byID[11].Status)

	_, err = e.report.CourseRoster(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestWriteRosterXLSX(t *testing.T) {
	e := enrolledEngine(t)

	var buf bytes.Buffer
	require.NoError(t, e.report.WriteRosterXLSX(context.Background(), 1, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(rosterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Student ID", rows[0][0])
	assert.Equal(t, "Grade", rows[0][10])

	graded := rows[1]
	if graded[0] != "10" {
		graded = rows[2]
	}
	assert.Equal(t, "Alan", graded[1])
	assert.Equal(t, "88", graded[9])
	assert.Equal(t, "B", graded[10])
}

func TestStudentReports(t *testing.T) {
	e := enrolledEngine(t)
	ctx := context.Background()

	courses, err := e.report.StudentCourses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "CS101", courses[0].CourseCode)

	grades, err := e.report.StudentGrades(ctx, 10)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, 88, grades[0].TotalMarks)

	_, err = e.report.StudentGrades(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	history, err := e.report.EnrollmentHistory(ctx, &dto.EnrollmentQuery{Status: string(models.EnrollmentInProgress)})
	require.NoError(t, err)
	assert.Len(t, history, 2)

	history, err = e.report.EnrollmentHistory(ctx, &dto.EnrollmentQuery{Status: string(models.EnrollmentPassed)})
	require.NoError(t, err)
	assert.Empty(t, history)
}

func rosterWorkbook(t *testing.T, ids ...string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Student ID"))
	for i, id := range ids {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, id))
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestImportRoster(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	e.store.PutEnrollment(models.Enrollment{StudentID: 11, CourseID: 1, Status: models.EnrollmentInProgress})

	result, err := e.report.ImportRoster(ctx, 1, rosterWorkbook(t, "10", "11", "abc", "", "999", "12"))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Enrolled)

	outcomes := map[int]dto.ImportOutcome{}
	for _, r := range result.Rows {
		outcomes[r.Row] = r.Outcome
	}
	assert.Equal(t, map[int]dto.ImportOutcome{
		2: dto.ImportEnrolled,
		3: dto.ImportDuplicate,
		4: dto.ImportInvalid,
		6: dto.ImportNotFound,
		7: dto.ImportEnrolled,
	}, outcomes)

	_, ok := e.store.Enrollment(12, 1)
	assert.True(t, ok)
}

func TestImportRosterRejectsBadInput(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.report.ImportRoster(ctx, 1, bytes.NewBufferString("not a workbook"))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = e.report.ImportRoster(ctx, 999, rosterWorkbook(t, "10"))
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestImportRosterIntoClosedCourse(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	_, err := e.lifecycle.SetAvailability(ctx, 1, models.AvailabilityClosed)
	require.NoError(t, err)

	result, err := e.report.ImportRoster(ctx, 1, rosterWorkbook(t, "10"))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, dto.ImportClosed, result.Rows[0].Outcome)
	assert.Zero(t, result.Enrolled)
}

func TestImportRosterStopsWhenStoreUnavailable(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	e.store.FailOn("CreateEnrollment", fmt.Errorf("%w: connection reset", apperrors.ErrStoreUnavailable))

	result, err := e.report.ImportRoster(ctx, 1, rosterWorkbook(t, "10", "11", "12"))
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.Nil(t, result)
	assert.Zero(t, e.store.EnrollmentCount())
}

func TestImportRosterRecordsConflictPerRow(t *testing.T) {
	e := newEngine()
	ctx := context.Background()
	e.store.FailOn("CreateEnrollment", fmt.Errorf("%w: lock timeout", apperrors.ErrConflict))

	result, err := e.report.ImportRoster(ctx, 1, rosterWorkbook(t, "10", "11"))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	for _, row := range result.Rows {
		assert.Equal(t, dto.ImportFailed, row.Outcome)
	}
	assert.Zero(t, result.Enrolled)
}
