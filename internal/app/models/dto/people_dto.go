package dto

import "time"

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	Name         string    `json:"name" binding:"required" example:"Alan Turing"`
	Email        string    `json:"email" binding:"required,email" example:"alan@unitrack.edu"`
	DateOfBirth  time.Time `json:"dob" binding:"required" example:"2003-06-23T00:00:00Z"`
	DepartmentID int64     `json:"departmentId" binding:"required,gt=0" example:"2"`
}

// CreateInstructorRequest represents instructor creation data
type CreateInstructorRequest struct {
	Name         string  `json:"name" binding:"required" example:"Ada Lovelace"`
	Email        string  `json:"email" binding:"required,email" example:"ada@unitrack.edu"`
	Salary       float64 `json:"salary" binding:"gte=0" example:"85000"`
	FacultyType  string  `json:"facultyType" binding:"required,oneof=Permanent Visiting" example:"Permanent"`
	DepartmentID int64   `json:"departmentId" binding:"required,gt=0" example:"2"`
}

// UpdateStudentRequest represents student update data
type UpdateStudentRequest CreateStudentRequest

// UpdateInstructorRequest represents instructor update data
type UpdateInstructorRequest CreateInstructorRequest
