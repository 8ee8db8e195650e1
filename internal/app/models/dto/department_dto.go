package dto

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required" example:"Computer Science"`
	Code string `json:"code" binding:"required,department_code" example:"CS"`
}

// UpdateDepartmentRequest represents department update data
type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required,department_code"`
}
