package common

import (
	"net/http"
	"strconv"

	"github.com/DhavalSuthar-24/transferhub/pkg/responses"
	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// GetPagination reads page and limit from the query string, falling back to
// the first page of DefaultPageSize items.
func GetPagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// ParseIDParam parses a numeric path parameter. On failure it has already
// written a 400 response.
func ParseIDParam(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		responses.SendError(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return 0, false
	}
	return uint(id), true
}

// ParseOptionalUint reads an optional numeric query filter.
func ParseOptionalUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
