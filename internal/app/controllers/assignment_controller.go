package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/services"
	"github.com/yigit/unitrack/internal/middleware"
)

// AssignmentController handles instructor assignment
type AssignmentController struct {
	assignmentService services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

// Assign makes an instructor the sole teacher of a course
// @Summary Assign instructor to course
// @Description Replaces any current instructor of the course. Repeating the same assignment changes nothing.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignInstructorRequest true "Assignment"
// @Success 200 {object} dto.APIResponse{data=dto.AssignmentResult} "Instructor assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Course or instructor not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent update, retryable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments [post]
func (c *AssignmentController) Assign(ctx *gin.Context) {
	var req dto.AssignInstructorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.assignmentService.Assign(ctx.Request.Context(), req.InstructorID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
