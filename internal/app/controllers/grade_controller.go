package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appAuth "github.com/yigit/unitrack/internal/app/auth"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/services"
	"github.com/yigit/unitrack/internal/middleware"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

// GradeController handles grade assignment
type GradeController struct {
	gradingService services.GradingService
	authzService   *appAuth.AuthorizationService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradingService services.GradingService, authzService *appAuth.AuthorizationService) *GradeController {
	return &GradeController{
		gradingService: gradingService,
		authzService:   authzService,
	}
}

// AssignGrades records the six assessment marks of a student
// @Summary Assign grades
// @Description Upserts the marks of an enrolled student and derives total and letter grade. Works on open and closed courses; enrollment status is never changed.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Param request body dto.AssignGradesRequest true "Assessment marks"
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Grade recorded"
// @Failure 400 {object} dto.ErrorResponse "Missing or out-of-range mark"
// @Failure 403 {object} dto.ErrorResponse "Only the course instructor, the instructor unassigned by its closure, or an admin may grade"
// @Failure 422 {object} dto.ErrorResponse "Student is not enrolled in the course"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/grades/{studentId} [put]
func (c *GradeController) AssignGrades(ctx *gin.Context) {
	courseID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := middleware.ParseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	var req dto.AssignGradesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	principal, ok := middleware.CurrentPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}
	if err := c.authzService.ValidateGrader(ctx.Request.Context(), principal, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	grade, err := c.gradingService.AssignGrades(ctx.Request.Context(), studentID, courseID, req.Scores())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      grade,
		Timestamp: time.Now(),
	})
}
