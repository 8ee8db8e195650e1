package models

import "time"

// Grade holds the raw assessment marks and the derived total and letter
// for one (student, course) pair.
type Grade struct {
	StudentID   int64     `json:"studentId" db:"student_id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Assignment1 int       `json:"assignment1" db:"assignment1"`
	Assignment2 int       `json:"assignment2" db:"assignment2"`
	Quiz1       int       `json:"quiz1" db:"quiz1"`
	Quiz2       int       `json:"quiz2" db:"quiz2"`
	Mid         int       `json:"mid" db:"mid"`
	Final       int       `json:"final" db:"final"`
	TotalMarks  int       `json:"totalMarks" db:"total_marks"`
	Letter      string    `json:"grade" db:"grade"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// RosterEntry is one enrolled student of a course with their grade, if any
type RosterEntry struct {
	StudentID   int64            `json:"studentId"`
	StudentName string           `json:"studentName"`
	Status      EnrollmentStatus `json:"status"`
	Grade       *Grade           `json:"grade,omitempty"`
}

// StudentGrade is a grade row with course display data
type StudentGrade struct {
	Grade
	CourseTitle string `json:"courseTitle"`
	CourseCode  string `json:"courseCode"`
}
