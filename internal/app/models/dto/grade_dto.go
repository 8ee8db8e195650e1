package dto

import "github.com/yigit/unitrack/internal/pkg/grading"

// AssignGradesRequest carries the six raw marks. Each is required; ranges
// are checked by the grading service so a bad mark reports the assessment.
type AssignGradesRequest struct {
	Assignment1 *int `json:"assignment1" binding:"required" example:"5"`
	Assignment2 *int `json:"assignment2" binding:"required" example:"4"`
	Quiz1       *int `json:"quiz1" binding:"required" example:"5"`
	Quiz2       *int `json:"quiz2" binding:"required" example:"3"`
	Mid         *int `json:"mid" binding:"required" example:"27"`
	Final       *int `json:"final" binding:"required" example:"45"`
}

// Scores converts the request after binding has ensured every mark is set
func (r AssignGradesRequest) Scores() grading.Scores {
	return grading.Scores{
		Assignment1: *r.Assignment1,
		Assignment2: *r.Assignment2,
		Quiz1:       *r.Quiz1,
		Quiz2:       *r.Quiz2,
		Mid:         *r.Mid,
		Final:       *r.Final,
	}
}
