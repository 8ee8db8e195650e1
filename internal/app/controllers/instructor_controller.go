package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/app/services"
	"github.com/yigit/unitrack/internal/middleware"
)

// InstructorController handles instructor records
type InstructorController struct {
	catalogService services.CatalogService
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(catalogService services.CatalogService) *InstructorController {
	return &InstructorController{catalogService: catalogService}
}

// CreateInstructor handles instructor creation
// @Summary Create an instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInstructorRequest true "Instructor information"
// @Success 201 {object} dto.APIResponse{data=models.Instructor} "Instructor created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors [post]
func (c *InstructorController) CreateInstructor(ctx *gin.Context) {
	var req dto.CreateInstructorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	instructor, err := c.catalogService.CreateInstructor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      instructor,
		Timestamp: time.Now(),
	})
}

// ListInstructors lists all instructors
// @Summary List instructors
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Instructor} "Instructors retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors [get]
func (c *InstructorController) ListInstructors(ctx *gin.Context) {
	instructors, err := c.catalogService.ListInstructors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instructors,
		Timestamp: time.Now(),
	})
}

// GetInstructor retrieves an instructor by ID
// @Summary Get instructor by ID
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=models.Instructor} "Instructor retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid instructor ID"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id} [get]
func (c *InstructorController) GetInstructor(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	instructor, err := c.catalogService.GetInstructor(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instructor,
		Timestamp: time.Now(),
	})
}

// UpdateInstructor edits an instructor record
// @Summary Update instructor
// @Tags instructors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Param request body dto.UpdateInstructorRequest true "Instructor information"
// @Success 200 {object} dto.APIResponse{data=models.Instructor} "Instructor updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Instructor or department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id} [put]
func (c *InstructorController) UpdateInstructor(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateInstructorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	instructor, err := c.catalogService.UpdateInstructor(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instructor,
		Timestamp: time.Now(),
	})
}

// DeleteInstructor deletes an instructor and unassigns their courses
// @Summary Delete instructor
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Instructor deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid instructor ID"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id} [delete]
func (c *InstructorController) DeleteInstructor(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalogService.DeleteInstructor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Instructor deleted successfully"},
		Timestamp: time.Now(),
	})
}

// Courses lists the courses an instructor teaches
// @Summary Instructor courses
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseSummary} "Courses retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid instructor ID"
// @Failure 404 {object} dto.ErrorResponse "Instructor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /instructors/{id}/courses [get]
func (c *InstructorController) Courses(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.catalogService.GetInstructor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	courses, err := c.catalogService.ListCourses(ctx.Request.Context(), repositories.CourseFilter{InstructorID: id})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}
