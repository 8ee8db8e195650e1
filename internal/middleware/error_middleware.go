package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
	"github.com/yigit/unitrack/internal/pkg/auth"
	"github.com/yigit/unitrack/internal/pkg/logger"
)

// HandleAPIError translates a service error into the matching status code
// and error body
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetailFor(err)
	if apperrors.IsRetryable(err) {
		detail = detail.WithRetryable()
	}
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("requestId", c.GetString(RequestIDKey)).
			Msg("Request failed")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

func errorDetailFor(err error) (int, *dto.ErrorDetail) {
	// the first CustomError in the chain carries the user-facing message
	var custom *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound,
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrDuplicateEnrollment):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeDuplicateEnrollment, "Student is already enrolled in this course")
	case errors.Is(err, apperrors.ErrCourseClosed):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeCourseClosed, "Course is closed for enrollment")
	case errors.Is(err, apperrors.ErrNotEnrolled):
		return http.StatusUnprocessableEntity,
			dto.NewErrorDetail(dto.ErrorCodeNotEnrolled, "Student is not enrolled in this course")
	case errors.Is(err, apperrors.ErrInvalidScore):
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidScore, message("Invalid assessment score"))
		if custom != nil {
			if field, ok := custom.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
		}
		return http.StatusBadRequest, detail
	case errors.Is(err, apperrors.ErrCourseAlreadyExists),
		errors.Is(err, apperrors.ErrDepartmentAlreadyExists),
		errors.Is(err, apperrors.ErrAccountAlreadyExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message("Resource already exists")).
				WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrDepartmentInUse):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Department has associated data and cannot be deleted")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict,
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Concurrent update, retry the request").
				WithSeverity(dto.ErrorSeverityWarning)
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable,
			dto.NewErrorDetail(dto.ErrorCodeStoreUnavailable, "Record store unavailable").
				WithSeverity(dto.ErrorSeverityCritical)
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message("Validation failed"))
		if custom != nil {
			if field, ok := custom.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
		}
		return http.StatusBadRequest, detail
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest,
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, message("Bad request"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrInvalidFormat):
		return http.StatusUnauthorized,
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden,
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	default:
		return http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
