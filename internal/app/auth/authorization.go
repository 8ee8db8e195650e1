package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/unitrack/internal/pkg/auth"
)

// CourseLister resolves the courses an instructor teaches or last taught
type CourseLister interface {
	ListCourses(ctx context.Context, f repositories.CourseFilter) ([]*models.CourseSummary, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
}

// AuthorizationService answers per-resource permission questions that a
// role check alone cannot
type AuthorizationService struct {
	courses CourseLister
	logger  zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(courses CourseLister, logger zerolog.Logger) *AuthorizationService {
	return &AuthorizationService{
		courses: courses,
		logger:  logger.With().Str("component", "authorization").Logger(),
	}
}

// TeachesCourse reports whether instructorID is the current instructor of courseID
func (s *AuthorizationService) TeachesCourse(ctx context.Context, instructorID, courseID int64) (bool, error) {
	if instructorID <= 0 {
		return false, nil
	}
	courses, err := s.courses.ListCourses(ctx, repositories.CourseFilter{InstructorID: instructorID})
	if err != nil {
		s.logger.Error().Err(err).Int64("instructorId", instructorID).Msg("Error listing instructor courses")
		return false, err
	}
	for _, course := range courses {
		if course.ID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// CanGrade reports whether principal may record grades in courseID.
// Administrators grade any course. Instructors grade the course they teach,
// and a closed course they taught when it closed.
func (s *AuthorizationService) CanGrade(ctx context.Context, principal pkgAuth.Principal, courseID int64) (bool, error) {
	switch principal.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleInstructor:
		teaches, err := s.TeachesCourse(ctx, principal.RefID, courseID)
		if err != nil || teaches {
			return teaches, err
		}
		return s.TaughtClosedCourse(ctx, principal.RefID, courseID)
	default:
		return false, nil
	}
}

// TaughtClosedCourse reports whether courseID is closed and instructorID was
// unassigned by that closure
func (s *AuthorizationService) TaughtClosedCourse(ctx context.Context, instructorID, courseID int64) (bool, error) {
	if instructorID <= 0 {
		return false, nil
	}
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return false, nil
		}
		s.logger.Error().Err(err).Int64("courseId", courseID).Msg("Error loading course")
		return false, err
	}
	return course.Availability == models.AvailabilityClosed &&
		course.LastInstructorID != nil && *course.LastInstructorID == instructorID, nil
}

// ValidateGrader returns ErrPermissionDenied unless principal may grade courseID
func (s *AuthorizationService) ValidateGrader(ctx context.Context, principal pkgAuth.Principal, courseID int64) error {
	ok, err := s.CanGrade(ctx, principal, courseID)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug().Str("login", principal.Login).Int64("courseId", courseID).Msg("Grading denied")
		return apperrors.ErrPermissionDenied
	}
	return nil
}
