package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/repositories"
)

// AssignmentService binds instructors to courses
type AssignmentService interface {
	// Assign makes instructorID the only instructor of courseID, replacing
	// any previous one. Repeating an assignment leaves the same state.
	Assign(ctx context.Context, instructorID, courseID int64) (*dto.AssignmentResult, error)
}

type assignmentServiceImpl struct {
	store  repositories.Store
	now    Clock
	logger zerolog.Logger
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(store repositories.Store, now Clock, logger zerolog.Logger) AssignmentService {
	if now == nil {
		now = utcNow
	}
	return &assignmentServiceImpl{
		store:  store,
		now:    now,
		logger: logger.With().Str("component", "assignment").Logger(),
	}
}

func (s *assignmentServiceImpl) Assign(ctx context.Context, instructorID, courseID int64) (*dto.AssignmentResult, error) {
	result := &dto.AssignmentResult{CourseID: courseID, InstructorID: instructorID}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		if _, err := tx.GetCourse(ctx, courseID, repositories.LockUpdate); err != nil {
			return err
		}
		// share lock keeps the instructor from being deleted before commit
		if _, err := tx.GetInstructor(ctx, instructorID, repositories.LockShare); err != nil {
			return err
		}
		changed, err := tx.ReplaceTeaches(ctx, courseID, instructorID, s.now())
		if err != nil {
			return err
		}
		result.Changed = changed
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("courseId", courseID).Int64("instructorId", instructorID).
			Msg("Instructor assignment failed")
		return nil, err
	}

	if result.Changed {
		s.logger.Info().Int64("courseId", courseID).Int64("instructorId", instructorID).Msg("Instructor assigned")
	}
	return result, nil
}
