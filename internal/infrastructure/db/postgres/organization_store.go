package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// OrganizationStore implements ports.OrganizationRepository.
type OrganizationStore struct {
	pool *pgxpool.Pool
}

func NewOrganizationStore(pool *pgxpool.Pool) *OrganizationStore {
	return &OrganizationStore{pool: pool}
}

// Create inserts an organization. Only the bootstrap command uses it.
func (s *OrganizationStore) Create(ctx context.Context, org *domain.Organization) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO organizaciones (nombre_organizacion, tipo_organizacion)
		VALUES ($1, $2)
		RETURNING id_organizacion, fecha_creacion_organizacion
	`, org.Name, string(org.Type)).Scan(&org.ID, &org.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", mapPostgresError(err))
	}
	return nil
}

func (s *OrganizationStore) Get(ctx context.Context, id int64) (*domain.Organization, error) {
	var (
		org  domain.Organization
		kind string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id_organizacion, nombre_organizacion, tipo_organizacion, fecha_creacion_organizacion
		FROM organizaciones
		WHERE id_organizacion = $1
	`, id).Scan(&org.ID, &org.Name, &kind, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	org.Type = domain.OrganizationType(kind)
	return &org, nil
}

// ZoneStore implements ports.ZoneRepository.
type ZoneStore struct {
	pool *pgxpool.Pool
}

func NewZoneStore(pool *pgxpool.Pool) *ZoneStore {
	return &ZoneStore{pool: pool}
}

// Create inserts a zone. Only the bootstrap command uses it.
func (s *ZoneStore) Create(ctx context.Context, zone *domain.Zone) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO zonas (nombre_zona, estado_zona) VALUES ($1, $2) RETURNING id_zona`,
		zone.Name, zone.Status,
	).Scan(&zone.ID)
	if err != nil {
		return fmt.Errorf("failed to create zone: %w", mapPostgresError(err))
	}
	return nil
}

// AddCoverage declares that an organization covers a zone. Repeated pairs
// are ignored.
func (s *ZoneStore) AddCoverage(ctx context.Context, orgID, zoneID int64) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO cobertura (id_organizacion, id_zona) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, orgID, zoneID)
	if err != nil {
		return fmt.Errorf("failed to add coverage: %w", mapPostgresError(err))
	}
	return nil
}

func (s *ZoneStore) List(ctx context.Context) ([]domain.Zone, error) {
	rows, err := s.pool.Query(ctx, `SELECT id_zona, nombre_zona, estado_zona FROM zonas ORDER BY id_zona`)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	defer rows.Close()

	zones := []domain.Zone{}
	for rows.Next() {
		var z domain.Zone
		if err := rows.Scan(&z.ID, &z.Name, &z.Status); err != nil {
			return nil, fmt.Errorf("failed to scan zone: %w", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

func (s *ZoneStore) Get(ctx context.Context, id int64) (*domain.Zone, error) {
	var z domain.Zone
	err := s.pool.QueryRow(ctx,
		`SELECT id_zona, nombre_zona, estado_zona FROM zonas WHERE id_zona = $1`, id,
	).Scan(&z.ID, &z.Name, &z.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}
	return &z, nil
}

func (s *ZoneStore) CoveringOrganizations(ctx context.Context, zoneID int64) ([]domain.Organization, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT o.id_organizacion, o.nombre_organizacion, o.tipo_organizacion, o.fecha_creacion_organizacion
		FROM cobertura c
		JOIN organizaciones o ON o.id_organizacion = c.id_organizacion
		WHERE c.id_zona = $1
		ORDER BY o.id_organizacion
	`, zoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to list covering organizations: %w", err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		var (
			o    domain.Organization
			kind string
		)
		if err := rows.Scan(&o.ID, &o.Name, &kind, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		o.Type = domain.OrganizationType(kind)
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
