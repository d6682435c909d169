package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

var tokenUser = &domain.User{ID: 7, OrganizationID: 3, Email: "op@org.mx", Role: domain.RoleSubManager}

func TestTokenService_RoundTrip(t *testing.T) {
	svc, err := NewTokenService("secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	token, err := svc.Issue(tokenUser, 0)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "op@org.mx", claims.Email)
	assert.EqualValues(t, 7, claims.UserID)
	assert.EqualValues(t, 3, claims.OrganizationID)
	assert.Equal(t, domain.RoleSubManager, claims.Role)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt, 5*time.Second)
}

func TestTokenService_Expired(t *testing.T) {
	svc, err := NewTokenService("secret", "HS256", time.Minute)
	require.NoError(t, err)
	token, err := svc.Issue(tokenUser, time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	issuer, err := NewTokenService("one", "HS256", time.Minute)
	require.NoError(t, err)
	verifier, err := NewTokenService("two", "HS256", time.Minute)
	require.NoError(t, err)

	token, err := issuer.Issue(tokenUser, 0)
	require.NoError(t, err)
	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RejectsOtherAlgorithm(t *testing.T) {
	issuer, err := NewTokenService("secret", "HS512", time.Minute)
	require.NoError(t, err)
	verifier, err := NewTokenService("secret", "HS256", time.Minute)
	require.NoError(t, err)

	token, err := issuer.Issue(tokenUser, 0)
	require.NoError(t, err)
	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RejectsMissingSubject(t *testing.T) {
	svc, err := NewTokenService("secret", "HS256", time.Minute)
	require.NoError(t, err)

	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id_user": 1,
		"exp":     time.Now().Add(time.Minute).Unix(),
	})
	token, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc, err := NewTokenService("secret", "HS256", time.Minute)
	require.NoError(t, err)
	_, err = svc.Validate("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestNewTokenService_Validation(t *testing.T) {
	_, err := NewTokenService("secret", "RS256", time.Minute)
	assert.Error(t, err)
	_, err = NewTokenService("", "HS256", time.Minute)
	assert.Error(t, err)
}
