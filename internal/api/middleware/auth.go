package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// UserKey is the echo context key holding the resolved *domain.User.
const UserKey = "user"

// Auth resolves the bearer token into the caller and stores it under UserKey.
// Any failure surfaces as domain.ErrUnauthenticated.
func Auth(guard ports.AccessGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrUnauthenticated
			}

			user, err := guard.ResolveCaller(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// CurrentUser returns the caller stored by Auth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(UserKey).(*domain.User)
	return u
}
