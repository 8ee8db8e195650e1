package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unitrack/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 200
	DefaultPage     = 1 // pages are 1-based
)

// ParsePaginationParams reads page and size from the query string, falling
// back to the defaults on missing or invalid values.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateSliceIndices returns the [start, end) bounds of a page within a
// list of totalItems.
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	start = (page - 1) * size
	if start >= totalItems {
		return totalItems, totalItems
	}
	end = start + size
	if end > totalItems {
		end = totalItems
	}
	return start, end
}

// NewPaginationInfo creates a standard PaginationInfo DTO
func NewPaginationInfo(totalItems, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := (totalItems + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// Paginate cuts one page out of items
func Paginate[T any](items []T, page, size int) dto.PagedResponse {
	start, end := CalculateSliceIndices(page, size, len(items))
	return dto.PagedResponse{
		Items:      items[start:end],
		Pagination: NewPaginationInfo(len(items), page, size),
	}
}
