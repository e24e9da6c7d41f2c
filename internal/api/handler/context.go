package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusops/user-service/internal/api/middleware"
	"github.com/campusops/user-service/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware. Both the
// id and the role must be present; a token lacking either is structurally
// valid but unusable for authorisation.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	if id == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Actor{ID: id, Role: domain.Role(role)}, nil
}
