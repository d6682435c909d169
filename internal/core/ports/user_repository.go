package ports

import (
	"context"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user and fills in its ID and CreatedAt. It returns
	// domain.ErrEmailTaken when the email is already used in any
	// organization.
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail returns domain.ErrNotFound when no user has that email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
