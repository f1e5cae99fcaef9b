package rest

import (
	"strconv"

	"learnDesk/pkg/apperr"
	"learnDesk/pkg/response"

	"github.com/labstack/echo/v4"
)

// uintParam parses a numeric path parameter.
func uintParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid " + name)
	}

	return uint(id), nil
}

// uintQuery parses an optional numeric query parameter; absent or
// malformed values come back as 0.
func uintQuery(c echo.Context, name string) uint {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}

	return uint(id)
}

// pageLimit reads the standard pagination query parameters.
func pageLimit(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}

	return page, limit
}

func paginationMeta(page, limit int, total int64) response.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return response.Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
