package dto

import "time"

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness and store reachability
type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
}

// PaginationInfo describes one page of a listing
type PaginationInfo struct {
	CurrentPage int `json:"currentPage" example:"1"`
	TotalPages  int `json:"totalPages" example:"3"`
	PageSize    int `json:"pageSize" example:"10"`
	TotalItems  int `json:"totalItems" example:"27"`
}

// PagedResponse is a page of items with its pagination info
type PagedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
