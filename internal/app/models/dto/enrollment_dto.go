package dto

// EnrollRequest registers a student in a course
type EnrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required,gt=0" example:"1"`
}

// EnrollmentQuery filters the enrollment history
type EnrollmentQuery struct {
	StudentID int64  `form:"studentId" binding:"omitempty,gt=0"`
	CourseID  int64  `form:"courseId" binding:"omitempty,gt=0"`
	Status    string `form:"status" binding:"omitempty,oneof=InProgress Passed Failed"`
}

// ImportOutcome is the result of one roster import row
type ImportOutcome string

const (
	ImportEnrolled  ImportOutcome = "enrolled"
	ImportDuplicate ImportOutcome = "duplicate"
	ImportClosed    ImportOutcome = "closed"
	ImportNotFound  ImportOutcome = "not_found"
	ImportInvalid   ImportOutcome = "invalid"
	ImportFailed    ImportOutcome = "failed"
)

// ImportRowResult reports one spreadsheet row of a roster import
type ImportRowResult struct {
	Row       int           `json:"row" example:"2"`
	StudentID int64         `json:"studentId,omitempty" example:"7"`
	Outcome   ImportOutcome `json:"outcome" example:"enrolled"`
	Message   string        `json:"message,omitempty"`
}

// RosterImportResult summarizes a roster import
type RosterImportResult struct {
	CourseID int64             `json:"courseId" example:"1"`
	Enrolled int               `json:"enrolled" example:"25"`
	Rows     []ImportRowResult `json:"rows"`
}
