package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// AuthService implements login and user registration.
type AuthService struct {
	users  ports.UserRepository
	orgs   ports.OrganizationRepository
	creds  *Credentials
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	orgs ports.OrganizationRepository,
	creds *Credentials,
	tokens ports.TokenService,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, orgs: orgs, creds: creds, tokens: tokens, log: log}
}

// Login never tells an unknown email apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.creds.Verify(user.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user, 0)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Int64("org_id", user.OrganizationID).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, fmt.Errorf("register: %w: name, email and password are required", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleOperator
	}
	if !role.Valid() {
		return nil, fmt.Errorf("register: %w: unknown role %q", domain.ErrInvalidInput, role)
	}

	if _, err := s.orgs.Get(ctx, in.OrganizationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("register: %w: organization %d does not exist", domain.ErrInvalidInput, in.OrganizationID)
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.creds.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		OrganizationID: in.OrganizationID,
		FullName:       in.FullName,
		Email:          in.Email,
		PasswordHash:   hash,
		Role:           role,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Int64("org_id", user.OrganizationID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}
