package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Name         string    `json:"name" db:"name" example:"Alan Turing"`
	Email        string    `json:"email" db:"email" example:"alan@unitrack.edu"`
	DateOfBirth  time.Time `json:"dob" db:"dob" example:"2003-06-23T00:00:00Z"`
	DepartmentID int64     `json:"departmentId" db:"department_id" example:"2"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
