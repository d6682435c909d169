package ports

import (
	"context"
	"time"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// Claims is the identity carried by a session token.
type Claims struct {
	Email          string
	UserID         int64
	OrganizationID int64
	Role           domain.Role
	ExpiresAt      time.Time
}

// TokenService issues and validates signed, time-limited session tokens.
type TokenService interface {
	// Issue signs a token for the user. A ttl <= 0 uses the configured
	// default.
	Issue(user *domain.User, ttl time.Duration) (string, error)
	// Validate returns domain.ErrInvalidToken for any malformed, forged or
	// expired token.
	Validate(token string) (*Claims, error)
}

// AccessGuard resolves callers and enforces allow-sets.
type AccessGuard interface {
	ResolveCaller(ctx context.Context, token string) (*domain.User, error)
	RequireRole(user *domain.User, allowed domain.RoleSet) error
}

// RegisterUserInput carries the fields of a new user created by governance.
type RegisterUserInput struct {
	OrganizationID int64
	FullName       string
	Email          string
	Password       string
	Role           domain.Role // empty means OPERADOR
}

// AuthService implements login and user administration.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, in RegisterUserInput) (*domain.User, error)
}
