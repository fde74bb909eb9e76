package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roster-hq/employee-roster/internal/api/metrics"
	"github.com/roster-hq/employee-roster/internal/core/domain"
	"github.com/roster-hq/employee-roster/internal/core/ports"
)

// UserHandler serves the admin-only /users resource.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Page size (default 10, max 100)"
// @Param        sortKey    query     string  false  "Sort field, e.g. salary"
// @Param        sortOrder  query     string  false  "ASC or DESC"
// @Success      200        {object}  listUsersResponse
// @Failure      400        {object}  messageResponse
// @Failure      401        {object}  messageResponse
// @Failure      403        {object}  messageResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}

	res, err := h.service.ListUsers(c.Request().Context(), caller(c), ports.ListUsersInput{
		Page:      q.Page,
		Limit:     q.Limit,
		SortKey:   q.SortKey,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return err
	}

	metrics.ListPageSize.Observe(float64(len(res.Users)))
	return c.JSON(http.StatusOK, listUsersResponse{
		Users:      res.Users,
		Total:      res.Total,
		TotalPages: res.TotalPages,
		Page:       res.Page,
		Limit:      res.Limit,
	})
}

// Get handles GET /users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUser(c.Request().Context(), caller(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:id. Only supplied fields change.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  updateUserResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.InvalidInput("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Request().Context(), caller(c), id, ports.UpdateUserInput{
		Email:               req.Email,
		Password:            req.Password,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		MiddleName:          req.MiddleName,
		BirthDate:           req.BirthDate,
		Phone:               req.Phone,
		ProgrammingLanguage: req.ProgrammingLanguage,
		Country:             req.Country,
		MentorName:          req.MentorName,
		EnglishLevel:        req.EnglishLevel,
		Salary:              req.Salary,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updateUserResponse{Message: "User updated", User: user})
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted"})
}
