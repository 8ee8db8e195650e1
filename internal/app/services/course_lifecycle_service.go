package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/grading"
)

// CourseLifecycleService drives the Open/Closed state of a course
type CourseLifecycleService interface {
	// SetAvailability moves a course to target. Closing unassigns the
	// instructor, records them as the last instructor, and finalizes in-progress enrollments in the same unit of
	// work; reopening only flips the flag. Repeating the current state is a
	// successful no-op.
	SetAvailability(ctx context.Context, courseID int64, target models.Availability) (*dto.AvailabilityResult, error)
}

type courseLifecycleServiceImpl struct {
	store  repositories.Store
	policy *grading.Policy
	logger zerolog.Logger
}

// NewCourseLifecycleService creates a new course lifecycle service
func NewCourseLifecycleService(store repositories.Store, policy *grading.Policy, logger zerolog.Logger) CourseLifecycleService {
	return &courseLifecycleServiceImpl{
		store:  store,
		policy: policy,
		logger: logger.With().Str("component", "course_lifecycle").Logger(),
	}
}

// DeriveEnrollmentStatus is the outcome recorded for an enrollment when its
// course closes: Failed without a grade or with the failing letter,
// otherwise Passed. The result is a snapshot; later grade edits do not
// change it.
func DeriveEnrollmentStatus(grade *models.Grade, policy *grading.Policy) models.EnrollmentStatus {
	if grade == nil || policy.IsFailing(grade.Letter) {
		return models.EnrollmentFailed
	}
	return models.EnrollmentPassed
}

func (s *courseLifecycleServiceImpl) SetAvailability(ctx context.Context, courseID int64, target models.Availability) (*dto.AvailabilityResult, error) {
	if !target.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("availability must be Open or Closed, got %q", target))
	}

	var result *dto.AvailabilityResult
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		// the course row lock serializes closures, assignments and admissions
		course, err := tx.GetCourse(ctx, courseID, repositories.LockUpdate)
		if err != nil {
			return err
		}

		result = &dto.AvailabilityResult{
			CourseID:     courseID,
			Availability: target,
			Previous:     course.Availability,
		}
		if course.Availability == target {
			return nil
		}

		if target == models.AvailabilityClosed {
			if err := unassignInstructor(ctx, tx, courseID, result); err != nil {
				return err
			}
			if result.FinalizedCount, err = finalizeEnrollments(ctx, tx, courseID, s.policy); err != nil {
				return err
			}
		}

		return tx.SetCourseAvailability(ctx, courseID, target)
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("courseId", courseID).Str("target", string(target)).
			Msg("Course availability change failed")
		return nil, err
	}

	if result.Previous != target {
		s.logger.Info().
			Int64("courseId", courseID).
			Str("from", string(result.Previous)).
			Str("to", string(target)).
			Int("finalized", result.FinalizedCount).
			Bool("instructorUnassigned", result.InstructorUnassigned).
			Msg("Course availability changed")
	}
	return result, nil
}

// unassignInstructor removes the course assignment and remembers the
// instructor so they can still correct grades of the closed course
func unassignInstructor(ctx context.Context, tx repositories.Tx, courseID int64, result *dto.AvailabilityResult) error {
	teaches, err := tx.GetTeaches(ctx, courseID)
	if err != nil {
		return err
	}
	if teaches == nil {
		return nil
	}
	if result.InstructorUnassigned, err = tx.DeleteTeaches(ctx, courseID); err != nil {
		return err
	}
	return tx.SetCourseLastInstructor(ctx, courseID, teaches.InstructorID)
}

// finalizeEnrollments records the closure outcome of every InProgress
// enrollment of the course. Enrollments finalized by an earlier closure
// keep their status.
func finalizeEnrollments(ctx context.Context, tx repositories.Tx, courseID int64, policy *grading.Policy) (int, error) {
	enrollments, err := tx.ListCourseEnrollments(ctx, courseID, repositories.LockUpdate)
	if err != nil {
		return 0, err
	}

	finalized := 0
	for _, e := range enrollments {
		if e.Status != models.EnrollmentInProgress {
			continue
		}
		grade, err := tx.GetGrade(ctx, e.StudentID, courseID)
		if err != nil {
			return 0, err
		}
		status := DeriveEnrollmentStatus(grade, policy)
		if err := tx.UpdateEnrollmentStatus(ctx, e.StudentID, courseID, status); err != nil {
			return 0, err
		}
		finalized++
	}
	return finalized, nil
}
