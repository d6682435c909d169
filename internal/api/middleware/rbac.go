package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// RBAC enforces the capability table for op. It must run after Auth.
func RBAC(guard ports.AccessGuard, op domain.Operation) echo.MiddlewareFunc {
	allowed := domain.AllowedRoles(op)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := guard.RequireRole(CurrentUser(c), allowed); err != nil {
				return err
			}
			return next(c)
		}
	}
}
