package handler

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roster-hq/employee-roster/internal/api/middleware"
	"github.com/roster-hq/employee-roster/internal/core/domain"
)

// caller returns the identity injected by the Auth middleware. A zero
// identity is left for the service guard to reject.
func caller(c echo.Context) domain.Identity {
	return middleware.IdentityFrom(c)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.InvalidInput("id must be a positive integer")
	}
	return id, nil
}

// bindListQuery reads page, limit, sortKey and sortOrder from the query string.
func bindListQuery(c echo.Context) (listUsersQuery, error) {
	var q listUsersQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("sortKey", &q.SortKey).
		String("sortOrder", &q.SortOrder).
		BindError()
	if err != nil {
		return listUsersQuery{}, domain.InvalidInput("page and limit must be integers")
	}
	return q, nil
}

// jsonFieldName reports struct fields by their JSON name in validation messages.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
