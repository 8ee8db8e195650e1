package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Store errors
	ErrStoreUnavailable = errors.New("record store unavailable")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Academic record errors
var (
	ErrDuplicateEnrollment = errors.New("student is already enrolled in this course")
	ErrCourseClosed        = errors.New("course is closed for enrollment")
	ErrNotEnrolled         = errors.New("student is not enrolled in this course")
	ErrInvalidScore        = errors.New("invalid assessment score")
)

// Catalog errors
var (
	ErrCourseAlreadyExists     = errors.New("course with this code already exists")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
	ErrAccountAlreadyExists    = errors.New("account with this login already exists")
	ErrDepartmentInUse         = errors.New("department has associated data and cannot be deleted")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewInvalidScoreError reports which assessment was out of range.
func NewInvalidScoreError(field, message string) error {
	return &CustomError{
		Err:     ErrInvalidScore,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// IsRetryable reports whether the caller may retry the whole operation.
// Only lock or transaction contention qualifies.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
