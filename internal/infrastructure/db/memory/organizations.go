package memory

import (
	"context"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// OrganizationRepository implements ports.OrganizationRepository.
type OrganizationRepository struct{ s *Store }

func (s *Store) Organizations() *OrganizationRepository { return &OrganizationRepository{s: s} }

func (r *OrganizationRepository) Get(_ context.Context, id int64) (*domain.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	org, ok := r.s.orgs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &org, nil
}

// ZoneRepository implements ports.ZoneRepository.
type ZoneRepository struct{ s *Store }

func (s *Store) Zones() *ZoneRepository { return &ZoneRepository{s: s} }

func (r *ZoneRepository) List(_ context.Context) ([]domain.Zone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Zone, 0, len(r.s.zones))
	for _, z := range r.s.zones {
		out = append(out, z)
	}
	sortByID(out, func(z domain.Zone) int64 { return z.ID })
	return out, nil
}

func (r *ZoneRepository) Get(_ context.Context, id int64) (*domain.Zone, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	z, ok := r.s.zones[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &z, nil
}

func (r *ZoneRepository) CoveringOrganizations(_ context.Context, zoneID int64) ([]domain.Organization, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Organization{}
	for k := range r.s.coverage {
		if k.zoneID != zoneID {
			continue
		}
		if org, ok := r.s.orgs[k.orgID]; ok {
			out = append(out, org)
		}
	}
	sortByID(out, func(o domain.Organization) int64 { return o.ID })
	return out, nil
}
