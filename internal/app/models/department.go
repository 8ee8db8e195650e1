package models

// Department groups courses, instructors and students
type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`
}
