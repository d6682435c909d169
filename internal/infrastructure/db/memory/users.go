package memory

import (
	"context"
	"fmt"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct{ s *Store }

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orgs[user.OrganizationID]; !ok {
		return fmt.Errorf("create user: %w: organization %d does not exist", domain.ErrInvalidInput, user.OrganizationID)
	}
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	user.ID = r.s.nextID()
	if user.Role == "" {
		user.Role = domain.RoleOperator
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.s.now().UTC()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}
