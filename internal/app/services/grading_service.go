package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/grading"
)

// GradingService records assessment marks
type GradingService interface {
	// AssignGrades validates the marks, derives total and letter, and
	// upserts the grade of an enrolled student. It works on open and closed
	// courses alike and never changes the enrollment status.
	AssignGrades(ctx context.Context, studentID, courseID int64, scores grading.Scores) (*models.Grade, error)
}

type gradingServiceImpl struct {
	store  repositories.Store
	policy *grading.Policy
	now    Clock
	logger zerolog.Logger
}

// NewGradingService creates a new grading service
func NewGradingService(store repositories.Store, policy *grading.Policy, now Clock, logger zerolog.Logger) GradingService {
	if now == nil {
		now = utcNow
	}
	return &gradingServiceImpl{
		store:  store,
		policy: policy,
		now:    now,
		logger: logger.With().Str("component", "grading").Logger(),
	}
}

func (s *gradingServiceImpl) AssignGrades(ctx context.Context, studentID, courseID int64, scores grading.Scores) (*models.Grade, error) {
	result, err := s.policy.Calculate(scores)
	if err != nil {
		return nil, err
	}

	grade := &models.Grade{
		StudentID:   studentID,
		CourseID:    courseID,
		Assignment1: scores.Assignment1,
		Assignment2: scores.Assignment2,
		Quiz1:       scores.Quiz1,
		Quiz2:       scores.Quiz2,
		Mid:         scores.Mid,
		Final:       scores.Final,
		TotalMarks:  result.Total,
		Letter:      result.Letter,
	}

	err = s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Tx) error {
		// share lock keeps the enrollment in place until the grade commits
		if _, err := tx.GetEnrollment(ctx, studentID, courseID, repositories.LockShare); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				return fmt.Errorf("student %d, course %d: %w", studentID, courseID, apperrors.ErrNotEnrolled)
			}
			return err
		}
		grade.UpdatedAt = s.now()
		return tx.UpsertGrade(ctx, grade)
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("studentId", studentID).Int64("courseId", courseID).
			Msg("Grade assignment failed")
		return nil, err
	}

	s.logger.Info().Int64("studentId", studentID).Int64("courseId", courseID).
		Int("total", grade.TotalMarks).Str("grade", grade.Letter).Msg("Grade recorded")
	return grade, nil
}
