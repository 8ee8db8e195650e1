package models

import "time"

// Enrollment is a student's registration in a course. One row per pair.
type Enrollment struct {
	StudentID  int64            `json:"studentId" db:"student_id"`
	CourseID   int64            `json:"courseId" db:"course_id"`
	EnrollDate time.Time        `json:"enrollDate" db:"enroll_date"`
	Status     EnrollmentStatus `json:"status" db:"status"`
}

// EnrollmentDetail enriches Enrollment with display names
type EnrollmentDetail struct {
	Enrollment
	StudentName    string  `json:"studentName"`
	CourseTitle    string  `json:"courseTitle"`
	CourseCode     string  `json:"courseCode"`
	Availability   string  `json:"availability"`
	InstructorName *string `json:"instructorName,omitempty"`
}
