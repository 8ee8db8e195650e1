package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/services"
	"github.com/yigit/unitrack/internal/middleware"
	"github.com/yigit/unitrack/internal/pkg/helpers"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	reportService     services.ReportService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, reportService services.ReportService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		reportService:     reportService,
	}
}

// Enroll registers a student in an open course
// @Summary Enroll student in course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Student enrolled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Only the student or an admin may enroll"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled, or course closed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	studentID, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), studentID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}

// History lists enrollments, newest first
// @Summary Enrollment history
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param studentId query int false "Filter by student"
// @Param courseId query int false "Filter by course"
// @Param status query string false "Filter by status" Enums(InProgress, Passed, Failed)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse{items=[]models.EnrollmentDetail}} "Enrollments retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (c *EnrollmentController) History(ctx *gin.Context) {
	var query dto.EnrollmentQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	history, err := c.reportService.EnrollmentHistory(ctx.Request.Context(), &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      helpers.Paginate(history, page, size),
		Timestamp: time.Now(),
	})
}
