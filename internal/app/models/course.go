package models

// Course represents a course offered by a department.
type Course struct {
	ID           int64        `json:"id" db:"id" example:"1"`
	DepartmentID int64        `json:"departmentId" db:"department_id" example:"2"`
	Code         string       `json:"code" db:"code" example:"CS101"`
	Title        string       `json:"title" db:"title" example:"Introduction to Programming"`
	Credits      int          `json:"credits" db:"credits" example:"3"`
	Availability Availability `json:"availability" db:"availability" example:"Open"`
	// LastInstructorID is the instructor unassigned when the course last closed
	LastInstructorID *int64 `json:"lastInstructorId,omitempty" db:"last_instructor_id"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}

// CourseSummary is a course row joined with display data for listings.
type CourseSummary struct {
	Course
	DepartmentName   string  `json:"departmentName"`
	InstructorID     *int64  `json:"instructorId,omitempty"`
	InstructorName   *string `json:"instructorName,omitempty"`
	StudentsEnrolled int     `json:"studentsEnrolled"`
}
