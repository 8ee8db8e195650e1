package grading

import (
	"fmt"

	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

// Maximum marks per assessment. They sum to MaxTotal.
const (
	MaxAssignment = 5
	MaxQuiz       = 5
	MaxMid        = 30
	MaxFinal      = 50
	MaxTotal      = 2*MaxAssignment + 2*MaxQuiz + MaxMid + MaxFinal
)

// Scores holds the six raw assessment marks of one student in one course.
type Scores struct {
	Assignment1 int `json:"assignment1"`
	Assignment2 int `json:"assignment2"`
	Quiz1       int `json:"quiz1"`
	Quiz2       int `json:"quiz2"`
	Mid         int `json:"mid"`
	Final       int `json:"final"`
}

// Result is the derived part of a grade.
type Result struct {
	Total  int    `json:"totalMarks"`
	Letter string `json:"grade"`
}

// Validate rejects negative marks and marks above the assessment maximum.
func (s Scores) Validate() error {
	checks := []struct {
		field string
		value int
		max   int
	}{
		{"assignment1", s.Assignment1, MaxAssignment},
		{"assignment2", s.Assignment2, MaxAssignment},
		{"quiz1", s.Quiz1, MaxQuiz},
		{"quiz2", s.Quiz2, MaxQuiz},
		{"mid", s.Mid, MaxMid},
		{"final", s.Final, MaxFinal},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > c.max {
			return apperrors.NewInvalidScoreError(c.field,
				fmt.Sprintf("%s must be between 0 and %d, got %d", c.field, c.max, c.value))
		}
	}
	return nil
}

// Total sums the six marks.
func (s Scores) Total() int {
	return s.Assignment1 + s.Assignment2 + s.Quiz1 + s.Quiz2 + s.Mid + s.Final
}

// Calculate validates the scores and derives total and letter.
func (p *Policy) Calculate(s Scores) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	total := s.Total()
	return Result{Total: total, Letter: p.Letter(total)}, nil
}
