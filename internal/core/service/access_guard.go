package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// AccessGuard turns bearer tokens into users and checks allow-sets.
type AccessGuard struct {
	tokens ports.TokenService
	users  ports.UserRepository
	log    zerolog.Logger
}

func NewAccessGuard(tokens ports.TokenService, users ports.UserRepository, log zerolog.Logger) *AccessGuard {
	return &AccessGuard{tokens: tokens, users: users, log: log}
}

// ResolveCaller validates the token and loads its user. The user is read
// fresh on every call, so a deleted user is rejected even while the token
// is still within its lifetime.
func (g *AccessGuard) ResolveCaller(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := g.tokens.Validate(token)
	if err != nil {
		g.log.Debug().Err(err).Msg("token rejected")
		return nil, fmt.Errorf("resolve caller: %w", domain.ErrUnauthenticated)
	}
	user, err := g.users.FindByEmail(ctx, claims.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolve caller: %w", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	return user, nil
}

func (g *AccessGuard) RequireRole(user *domain.User, allowed domain.RoleSet) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if !allowed.Allows(user.Role) {
		return domain.ErrForbidden
	}
	return nil
}
