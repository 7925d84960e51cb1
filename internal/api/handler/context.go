package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/devconnector/connector-api/internal/api/middleware"
	"github.com/devconnector/connector-api/internal/core/domain"
)

// ctxIdentity returns the identity id injected by the Auth middleware. An
// empty value means the route was mounted without the middleware; fail
// closed rather than act on behalf of nobody.
func ctxIdentity(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.IdentityKey).(string)
	if id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}
