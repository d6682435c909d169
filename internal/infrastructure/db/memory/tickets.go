package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// TicketRepository implements ports.TicketRepository.
type TicketRepository struct{ s *Store }

func (s *Store) Tickets() *TicketRepository { return &TicketRepository{s: s} }

func (r *TicketRepository) Create(_ context.Context, t *domain.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orgs[t.OrganizationID]; !ok {
		return fmt.Errorf("create ticket: %w: organization %d does not exist", domain.ErrInvalidInput, t.OrganizationID)
	}
	if t.ZoneID != nil {
		if _, ok := r.s.zones[*t.ZoneID]; !ok {
			return fmt.Errorf("create ticket: %w", domain.ErrInvalidZone)
		}
	}

	t.ID = r.s.nextID()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = r.s.now().UTC()
	}
	for i := range t.Evidence {
		t.Evidence[i].ID = r.s.nextID()
		t.Evidence[i].TicketID = t.ID
		if t.Evidence[i].FileType == "" {
			t.Evidence[i].FileType = domain.FileImage
		}
		r.s.evidence[t.Evidence[i].ID] = t.Evidence[i]
	}

	stored := *t
	stored.Evidence = nil
	r.s.tickets[t.ID] = stored
	return nil
}

func (r *TicketRepository) List(_ context.Context, f ports.TicketFilter) ([]domain.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Ticket{}
	for _, t := range r.s.tickets {
		if t.OrganizationID != f.OrganizationID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.ZoneID != nil && (t.ZoneID == nil || *t.ZoneID != *f.ZoneID) {
			continue
		}
		out = append(out, t)
	}
	newestFirst(out)
	return out, nil
}

func (r *TicketRepository) Get(_ context.Context, id, orgID int64) (*domain.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tickets[id]
	if !ok || t.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}
	t.Evidence = r.evidenceLocked(id)
	return &t, nil
}

func (r *TicketRepository) Update(_ context.Context, t *domain.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tickets[t.ID]
	if !ok || cur.OrganizationID != t.OrganizationID {
		return domain.ErrNotFound
	}
	if t.ProjectID != nil {
		if _, ok := r.s.projects[*t.ProjectID]; !ok {
			return fmt.Errorf("update ticket: %w", domain.ErrInvalidProject)
		}
	}
	cur.ProjectID = t.ProjectID
	cur.Status = t.Status
	cur.Priority = t.Priority
	cur.ClosedAt = t.ClosedAt
	r.s.tickets[t.ID] = cur
	return nil
}

func (r *TicketRepository) Transfer(_ context.Context, id, fromOrg, toOrg int64) (*domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok || t.OrganizationID != fromOrg {
		return nil, domain.ErrNotFound
	}
	if _, ok := r.s.orgs[toOrg]; !ok {
		return nil, fmt.Errorf("transfer ticket: %w", domain.ErrInvalidTarget)
	}
	t.OrganizationID = toOrg
	t.ProjectID = nil
	t.Status = domain.TicketReceived
	t.ClosedAt = nil
	r.s.tickets[id] = t

	t.Evidence = r.evidenceLocked(id)
	return &t, nil
}

func (r *TicketRepository) ListByReporter(_ context.Context, reporterID string) ([]domain.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Ticket{}
	for _, t := range r.s.tickets {
		if t.ReporterID == reporterID {
			out = append(out, t)
		}
	}
	newestFirst(out)
	return out, nil
}

func (r *TicketRepository) CountByState(_ context.Context, orgID int64) (resolved, active int64, err error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tickets {
		if t.OrganizationID != orgID {
			continue
		}
		if t.Status == domain.TicketResolved {
			resolved++
		}
		if t.Status.Active() {
			active++
		}
	}
	return resolved, active, nil
}

func (r *TicketRepository) evidenceLocked(ticketID int64) []domain.Evidence {
	var out []domain.Evidence
	for _, e := range r.s.evidence {
		if e.TicketID == ticketID {
			out = append(out, e)
		}
	}
	sortByID(out, func(e domain.Evidence) int64 { return e.ID })
	return out
}

func newestFirst(list []domain.Ticket) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
