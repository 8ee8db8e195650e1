package models

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID           int64   `json:"id" db:"id" example:"1"`
	Name         string  `json:"name" db:"name" example:"Ada Lovelace"`
	Email        string  `json:"email" db:"email" example:"ada@unitrack.edu"`
	Salary       float64 `json:"salary" db:"salary" example:"85000"`
	FacultyType  string  `json:"facultyType" db:"faculty_type" example:"Permanent"`
	DepartmentID int64   `json:"departmentId" db:"department_id" example:"2"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
