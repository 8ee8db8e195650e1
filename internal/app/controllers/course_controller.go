package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/repositories"
	"github.com/yigit/unitrack/internal/app/services"
	"github.com/yigit/unitrack/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxImportSize bounds roster uploads
const maxImportSize = 8 << 20

// CourseController handles course catalog, lifecycle and roster endpoints
type CourseController struct {
	catalogService   services.CatalogService
	lifecycleService services.CourseLifecycleService
	reportService    services.ReportService
}

// NewCourseController creates a new CourseController
func NewCourseController(
	catalogService services.CatalogService,
	lifecycleService services.CourseLifecycleService,
	reportService services.ReportService,
) *CourseController {
	return &CourseController{
		catalogService:   catalogService,
		lifecycleService: lifecycleService,
		reportService:    reportService,
	}
}

// CreateCourse handles course creation
// @Summary Create a course
// @Description Creates a new course. New courses are Open.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.catalogService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// ListCourses lists courses with department, instructor and enrolled count
// @Summary List courses
// @Description Lists courses with their department, instructor and number of enrolled students
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param open query bool false "Only open courses"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseSummary} "Courses retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	filter := repositories.CourseFilter{OnlyOpen: ctx.Query("open") == "true"}

	courses, err := c.catalogService.ListCourses(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// GetCourse retrieves a course by ID
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.catalogService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// UpdateCourse edits a course
// @Summary Update a course
// @Description Edits code, title, credits and department. Availability is rejected here; use the availability endpoint so closure runs its cascade.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course information"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Course or department not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.catalogService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// DeleteCourse deletes a course with its enrollments and grades
// @Summary Delete course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalogService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course deleted successfully"},
		Timestamp: time.Now(),
	})
}

// SetAvailability opens or closes a course
// @Summary Open or close a course
// @Description Closing a course unassigns its instructor and finalizes every in-progress enrollment as Passed or Failed from its grade, atomically. Reopening only flips the flag. Repeating the current state changes nothing.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.SetAvailabilityRequest true "Target availability"
// @Success 200 {object} dto.APIResponse{data=dto.AvailabilityResult} "Availability set"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent update, retryable"
// @Failure 503 {object} dto.ErrorResponse "Record store unavailable"
// @Router /courses/{id}/availability [patch]
func (c *CourseController) SetAvailability(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.SetAvailabilityRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.lifecycleService.SetAvailability(ctx.Request.Context(), id, req.Availability)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// Roster lists the enrolled students of a course with their grades
// @Summary Course roster
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.RosterEntry} "Roster retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 403 {object} dto.ErrorResponse "Instructor or admin role required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/roster [get]
func (c *CourseController) Roster(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	roster, err := c.reportService.CourseRoster(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      roster,
		Timestamp: time.Now(),
	})
}

// RosterXLSX exports the roster as a spreadsheet
// @Summary Export course roster
// @Tags courses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {file} file "Roster workbook"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/roster.xlsx [get]
func (c *CourseController) RosterXLSX(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	// buffer so a failure can still be reported as JSON
	var buf bytes.Buffer
	if err := c.reportService.WriteRosterXLSX(ctx.Request.Context(), id, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="course-%d-roster.xlsx"`, id))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ImportRoster enrolls the students listed in an uploaded spreadsheet
// @Summary Import course roster
// @Description Reads student IDs from column A of the first sheet (row 1 is a header) and enrolls each one. Each row reports its own outcome.
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param file formData file true "XLSX workbook"
// @Success 200 {object} dto.APIResponse{data=dto.RosterImportResult} "Import finished"
// @Failure 400 {object} dto.ErrorResponse "Missing or unreadable file"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enrollments/import [post]
func (c *CourseController) ImportRoster(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "File is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if fileHeader.Size > maxImportSize {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "File is too large").
			WithField("file").
			WithDetails(fmt.Sprintf("maximum size is %d bytes", maxImportSize))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	result, err := c.reportService.ImportRoster(ctx.Request.Context(), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
