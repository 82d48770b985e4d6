package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/legalaid/practice-api/internal/api/middleware"
	"github.com/legalaid/practice-api/internal/core/domain"
)

// ctxPrincipal returns the principal injected by the Auth middleware. A
// missing principal means the route was mounted without Auth.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.ID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
	}
	return p, nil
}

// errInvalidBody is returned when the request body cannot be decoded.
var errInvalidBody = echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
