package models

import "time"

// Teaches binds one instructor to one course. A course has at most one row.
type Teaches struct {
	CourseID     int64     `json:"courseId" db:"course_id"`
	InstructorID int64     `json:"instructorId" db:"instructor_id"`
	AssignedAt   time.Time `json:"assignedAt" db:"assigned_at"`
}
