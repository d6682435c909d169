package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/infrastructure/db/memory"
)

func TestAccessGuard_ResolveCaller(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, f.orgA.ID, "op@a.mx", domain.RoleOperator)
	token, err := f.tokens.Issue(user, 0)
	require.NoError(t, err)

	got, err := f.guard.ResolveCaller(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAccessGuard_ResolveCaller_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.guard.ResolveCaller(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = f.guard.ResolveCaller(ctx, "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	past := *f.tokens
	past.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := past.Issue(&domain.User{Email: "x@a.mx"}, time.Minute)
	require.NoError(t, err)
	_, err = f.guard.ResolveCaller(ctx, expired)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAccessGuard_ResolveCaller_DeletedUser(t *testing.T) {
	f := newFixture(t)
	user := f.registerUser(t, f.orgA.ID, "gone@a.mx", domain.RoleOperator)
	token, err := f.tokens.Issue(user, 0)
	require.NoError(t, err)

	// a guard over an empty user table sees the user as deleted
	guard := NewAccessGuard(f.tokens, memory.NewStore().Users(), zerolog.Nop())
	_, err = guard.ResolveCaller(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAccessGuard_RequireRole(t *testing.T) {
	f := newFixture(t)
	op := &domain.User{Role: domain.RoleOperator}
	gov := &domain.User{Role: domain.RoleGovernance}

	assert.NoError(t, f.guard.RequireRole(op, domain.AllowAuthenticated))
	assert.ErrorIs(t, f.guard.RequireRole(op, domain.AllowGovernance), domain.ErrForbidden)
	assert.NoError(t, f.guard.RequireRole(gov, domain.AllowGovernance))
	assert.ErrorIs(t, f.guard.RequireRole(nil, domain.AllowAuthenticated), domain.ErrUnauthenticated)
}
