package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// UserStore implements ports.UserRepository.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.RoleOperator
	}
	query := `
		INSERT INTO usuarios (
			id_organizacion_usuario, nombre_completo_usuario, correo_usuario,
			contrasena_usuario, rol_usuario, fecha_creacion_usuario
		) VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
		RETURNING id_usuario, fecha_creacion_usuario
	`
	err := s.pool.QueryRow(ctx, query,
		user.OrganizationID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		nullTime(user.CreatedAt),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapPostgresError(err))
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id_usuario, id_organizacion_usuario, nombre_completo_usuario,
		       correo_usuario, contrasena_usuario, rol_usuario, fecha_creacion_usuario
		FROM usuarios
		WHERE correo_usuario = $1
	`
	var (
		u    domain.User
		role string
	)
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.OrganizationID, &u.FullName, &u.Email, &u.PasswordHash, &role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	u.Role = domain.Role(role)
	return &u, nil
}
