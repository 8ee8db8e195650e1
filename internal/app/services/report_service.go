package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

const rosterSheet = "Roster"

var rosterHeader = []interface{}{
	"Student ID", "Name", "Status", "Assignment 1", "Assignment 2",
	"Quiz 1", "Quiz 2", "Mid", "Final", "Total", "Grade",
}

// ReportService serves read-only listings and the roster spreadsheet
type ReportService interface {
	CourseRoster(ctx context.Context, courseID int64) ([]*models.RosterEntry, error)
	WriteRosterXLSX(ctx context.Context, courseID int64, w io.Writer) error
	StudentCourses(ctx context.Context, studentID int64) ([]*models.EnrollmentDetail, error)
	StudentGrades(ctx context.Context, studentID int64) ([]*models.StudentGrade, error)
	EnrollmentHistory(ctx context.Context, q *dto.EnrollmentQuery) ([]*models.EnrollmentDetail, error)
	ImportRoster(ctx context.Context, courseID int64, r io.Reader) (*dto.RosterImportResult, error)
}

type reportServiceImpl struct {
	reader     repositories.Reader
	enrollment EnrollmentService
	logger     zerolog.Logger
}

// NewReportService creates a new report service. Imported rows are
// admitted through enrollment one at a time.
func NewReportService(reader repositories.Reader, enrollment EnrollmentService, logger zerolog.Logger) ReportService {
	return &reportServiceImpl{
		reader:     reader,
		enrollment: enrollment,
		logger:     logger.With().Str("component", "report").Logger(),
	}
}

func (s *reportServiceImpl) CourseRoster(ctx context.Context, courseID int64) ([]*models.RosterEntry, error) {
	if _, err := s.reader.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	details, err := s.reader.ListEnrollmentDetails(ctx, repositories.EnrollmentFilter{CourseID: courseID})
	if err != nil {
		return nil, err
	}
	grades, err := s.reader.ListCourseGrades(ctx, courseID)
	if err != nil {
		return nil, err
	}

	roster := make([]*models.RosterEntry, 0, len(details))
	for _, d := range details {
		roster = append(roster, &models.RosterEntry{
			StudentID:   d.StudentID,
			StudentName: d.StudentName,
			Status:      d.Status,
			Grade:       grades[d.StudentID],
		})
	}
	return roster, nil
}

func (s *reportServiceImpl) WriteRosterXLSX(ctx context.Context, courseID int64, w io.Writer) error {
	roster, err := s.CourseRoster(ctx, courseID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close roster workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), rosterSheet); err != nil {
		return fmt.Errorf("failed to name roster sheet: %w", err)
	}
	if err := f.SetSheetRow(rosterSheet, "A1", &rosterHeader); err != nil {
		return fmt.Errorf("failed to write roster header: %w", err)
	}

	for i, entry := range roster {
		row := []interface{}{entry.StudentID, entry.StudentName, string(entry.Status)}
		if g := entry.Grade; g != nil {
			row = append(row, g.Assignment1, g.Assignment2, g.Quiz1, g.Quiz2, g.Mid, g.Final, g.TotalMarks, g.Letter)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write roster row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write roster workbook: %w", err)
	}
	return nil
}

func (s *reportServiceImpl) StudentCourses(ctx context.Context, studentID int64) ([]*models.EnrollmentDetail, error) {
	if _, err := s.reader.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.reader.ListEnrollmentDetails(ctx, repositories.EnrollmentFilter{StudentID: studentID})
}

func (s *reportServiceImpl) StudentGrades(ctx context.Context, studentID int64) ([]*models.StudentGrade, error) {
	if _, err := s.reader.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.reader.ListStudentGrades(ctx, studentID)
}

func (s *reportServiceImpl) EnrollmentHistory(ctx context.Context, q *dto.EnrollmentQuery) ([]*models.EnrollmentDetail, error) {
	return s.reader.ListEnrollmentDetails(ctx, repositories.EnrollmentFilter{
		StudentID: q.StudentID,
		CourseID:  q.CourseID,
		Status:    models.EnrollmentStatus(q.Status),
	})
}

func (s *reportServiceImpl) ImportRoster(ctx context.Context, courseID int64, r io.Reader) (*dto.RosterImportResult, error) {
	if _, err := s.reader.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewBadRequestError("file is not a readable XLSX workbook")
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close imported workbook")
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, apperrors.NewBadRequestError("workbook does not contain any sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}

	result := &dto.RosterImportResult{CourseID: courseID, Rows: []dto.ImportRowResult{}}
	for i, row := range rows {
		// row 1 is the header
		if i == 0 {
			continue
		}
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rowResult := dto.ImportRowResult{Row: i + 1}
		studentID, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if err != nil || studentID <= 0 {
			rowResult.Outcome = dto.ImportInvalid
			rowResult.Message = fmt.Sprintf("invalid student id %q", row[0])
			result.Rows = append(result.Rows, rowResult)
			continue
		}
		rowResult.StudentID = studentID

		_, err = s.enrollment.Enroll(ctx, studentID, courseID)
		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			s.logger.Error().Err(err).Int64("courseId", courseID).Int("row", i+1).
				Int("enrolled", result.Enrolled).Msg("Roster import aborted")
			return nil, err
		}
		rowResult.Outcome = importOutcome(err)
		if err != nil {
			rowResult.Message = err.Error()
		} else {
			result.Enrolled++
		}
		result.Rows = append(result.Rows, rowResult)
	}

	s.logger.Info().Int64("courseId", courseID).Int("rows", len(result.Rows)).Int("enrolled", result.Enrolled).
		Msg("Roster imported")
	return result, nil
}

func importOutcome(err error) dto.ImportOutcome {
	switch {
	case err == nil:
		return dto.ImportEnrolled
	case errors.Is(err, apperrors.ErrDuplicateEnrollment):
		return dto.ImportDuplicate
	case errors.Is(err, apperrors.ErrCourseClosed):
		return dto.ImportClosed
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.ImportNotFound
	default:
		return dto.ImportFailed
	}
}
