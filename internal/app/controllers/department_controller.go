package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/models/dto"
	"github.com/yigit/unitrack/internal/app/services"
	"github.com/yigit/unitrack/internal/middleware"
)

// DepartmentController handles department-related operations
type DepartmentController struct {
	catalogService services.CatalogService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(catalogService services.CatalogService) *DepartmentController {
	return &DepartmentController{catalogService: catalogService}
}

// CreateDepartment handles department creation
// @Summary Create a new department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} dto.APIResponse{data=models.Department} "Department created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "Department already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department, err := c.catalogService.CreateDepartment(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      department,
		Timestamp: time.Now(),
	})
}

// GetDepartmentByID retrieves a department by ID
// @Summary Get department by ID
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=models.Department} "Department retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartmentByID(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	department, err := c.catalogService.GetDepartment(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      department,
		Timestamp: time.Now(),
	})
}

// GetAllDepartments retrieves all departments
// @Summary Get all departments
// @Tags departments
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	departments, err := c.catalogService.ListDepartments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      departments,
		Timestamp: time.Now(),
	})
}

// UpdateDepartment updates a department
// @Summary Update department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "Department information"
// @Success 200 {object} dto.APIResponse{data=models.Department} "Department updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Department name or code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [put]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateDepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department, err := c.catalogService.UpdateDepartment(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      department,
		Timestamp: time.Now(),
	})
}

// DeleteDepartment deletes a department
// @Summary Delete department
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Department deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Department has associated data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalogService.DeleteDepartment(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Department deleted successfully"},
		Timestamp: time.Now(),
	})
}
