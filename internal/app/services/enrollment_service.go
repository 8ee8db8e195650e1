package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

// EnrollmentService admits students into courses
type EnrollmentService interface {
	// Enroll registers a student in an open course with status InProgress.
	// A second enrollment for the same pair fails with
	// ErrDuplicateEnrollment; a closed course fails with ErrCourseClosed.
	Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
}

type enrollmentServiceImpl struct {
	store  repositories.Store
	now    Clock
	logger zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(store repositories.Store, now Clock, logger zerolog.Logger) EnrollmentService {
	if now == nil {
		now = utcNow
	}
	return &enrollmentServiceImpl{
		store:  store,
		now:    now,
		logger: logger.With().Str("component", "enrollment").Logger(),
	}
}

func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	var enrollment *models.Enrollment

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		if _, err := tx.GetStudent(ctx, studentID); err != nil {
			return err
		}
		// share lock: a concurrent closure waits for this admission or
		// this admission sees the course closed
		course, err := tx.GetCourse(ctx, courseID, repositories.LockShare)
		if err != nil {
			return err
		}

		_, err = tx.GetEnrollment(ctx, studentID, courseID, repositories.LockNone)
		switch {
		case err == nil:
			return fmt.Errorf("student %d, course %d: %w", studentID, courseID, apperrors.ErrDuplicateEnrollment)
		case !errors.Is(err, apperrors.ErrResourceNotFound):
			return err
		}

		if course.Availability != models.AvailabilityOpen {
			return fmt.Errorf("course %d: %w", courseID, apperrors.ErrCourseClosed)
		}

		enrollment = &models.Enrollment{
			StudentID:  studentID,
			CourseID:   courseID,
			EnrollDate: s.now(),
			Status:     models.EnrollmentInProgress,
		}
		return tx.CreateEnrollment(ctx, enrollment)
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("studentId", studentID).Int64("courseId", courseID).Msg("Enrollment rejected")
		return nil, err
	}

	s.logger.Info().Int64("studentId", studentID).Int64("courseId", courseID).Msg("Student enrolled")
	return enrollment, nil
}
