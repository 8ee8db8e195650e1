package dto

import "github.com/yigit/unitrack/internal/app/models"

// CreateCourseRequest represents course creation data. New courses start Open.
type CreateCourseRequest struct {
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0" example:"2"`
	Code         string `json:"code" binding:"required,course_code" example:"CS101"`
	Title        string `json:"title" binding:"required" example:"Introduction to Programming"`
	Credits      int    `json:"credits" binding:"required,min=1,max=12" example:"3"`
}

// UpdateCourseRequest represents course update data. Availability is only
// changed through the availability endpoint; a request carrying it is rejected.
type UpdateCourseRequest struct {
	DepartmentID int64                `json:"departmentId" binding:"required,gt=0" example:"2"`
	Code         string               `json:"code" binding:"required,course_code" example:"CS101"`
	Title        string               `json:"title" binding:"required" example:"Introduction to Programming"`
	Credits      int                  `json:"credits" binding:"required,min=1,max=12" example:"3"`
	Availability *models.Availability `json:"availability,omitempty" swaggerignore:"true"`
}

// SetAvailabilityRequest opens or closes a course
type SetAvailabilityRequest struct {
	Availability models.Availability `json:"availability" binding:"required,oneof=Open Closed" example:"Closed"`
}

// AvailabilityResult reports what a lifecycle transition changed
type AvailabilityResult struct {
	CourseID     int64               `json:"courseId" example:"1"`
	Availability models.Availability `json:"availability" example:"Closed"`
	Previous     models.Availability `json:"previous" example:"Open"`
	// FinalizedCount is the number of enrollments moved out of InProgress
	FinalizedCount       int  `json:"finalizedCount" example:"12"`
	InstructorUnassigned bool `json:"instructorUnassigned"`
}

// AssignInstructorRequest makes an instructor the sole teacher of a course
type AssignInstructorRequest struct {
	CourseID     int64 `json:"courseId" binding:"required,gt=0" example:"1"`
	InstructorID int64 `json:"instructorId" binding:"required,gt=0" example:"3"`
}

// AssignmentResult reports the assignment after the request
type AssignmentResult struct {
	CourseID     int64 `json:"courseId" example:"1"`
	InstructorID int64 `json:"instructorId" example:"3"`
	// Changed is false when the instructor already taught the course
	Changed bool `json:"changed"`
}
