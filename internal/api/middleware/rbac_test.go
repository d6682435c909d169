package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

func runRBAC(t *testing.T, user *domain.User, op domain.Operation) (bool, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if user != nil {
		c.Set(UserKey, user)
	}

	called := false
	handler := RBAC(newGuard(user), op)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return called, err
}

func TestRBAC_Allows(t *testing.T) {
	called, err := runRBAC(t, &domain.User{Role: domain.RoleGovernance}, domain.OpRegisterUser)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_AuthenticatedOnlyAllowsAnyRole(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleOperator, domain.RoleAuditor, domain.RoleSocialGroup} {
		called, err := runRBAC(t, &domain.User{Role: role}, domain.OpInbox)
		if err != nil || !called {
			t.Fatalf("role %s: expected pass-through, got %v", role, err)
		}
	}
}

func TestRBAC_Forbidden(t *testing.T) {
	called, err := runRBAC(t, &domain.User{Role: domain.RoleOperator}, domain.OpRegisterUser)
	if called {
		t.Fatalf("next handler must not be called")
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_MissingUser(t *testing.T) {
	_, err := runRBAC(t, nil, domain.OpInbox)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
