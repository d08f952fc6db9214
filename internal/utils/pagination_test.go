// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, query string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/products?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsCatalogFilters(t *testing.T) {
	params := paramsForQuery(t, "brand=Nike&style_id=dd1391-100&search=dunk")

	assert.Equal(t, "Nike", params.Brand)
	assert.Equal(t, "DD1391-100", params.StyleID, "style codes are matched uppercase")
	assert.Equal(t, "dunk", params.Search)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsForQuery(t, "page=0&limit=500&order=sideways")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
	assert.Equal(t, "created_at", params.Sort)
	assert.Empty(t, params.Brand)
	assert.Empty(t, params.StyleID)
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]string{"a", "b"}, 41, PaginationParams{Page: 2, Limit: 20})

	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, int64(41), result.Total)
	assert.Equal(t, 2, result.Page)
}
