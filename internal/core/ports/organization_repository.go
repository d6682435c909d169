package ports

import (
	"context"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// OrganizationRepository reads tenants.
type OrganizationRepository interface {
	Get(ctx context.Context, id int64) (*domain.Organization, error)
}

// ZoneRepository reads zones and the organization↔zone coverage relation.
type ZoneRepository interface {
	List(ctx context.Context) ([]domain.Zone, error)
	Get(ctx context.Context, id int64) (*domain.Zone, error)
	// CoveringOrganizations lists every organization with coverage over the
	// zone, ordered by id.
	CoveringOrganizations(ctx context.Context, zoneID int64) ([]domain.Organization, error)
}
