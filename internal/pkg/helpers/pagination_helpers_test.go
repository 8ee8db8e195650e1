package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, DefaultPageSize},
		{"?page=3&size=5", 3, 5},
		{"?page=0&size=-1", 1, DefaultPageSize},
		{"?page=abc&size=100000", 1, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/enrollments"+tt.query, nil)

			page, size := ParsePaginationParams(c)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantSize, size)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	page := Paginate(items, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 7, page.Pagination.TotalItems)

	last := Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, last.Items)

	beyond := Paginate(items, 9, 3)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 3, beyond.Pagination.CurrentPage)

	empty := Paginate([]int{}, 1, 10)
	assert.Equal(t, 1, empty.Pagination.TotalPages)
	assert.Zero(t, empty.Pagination.TotalItems)
}
