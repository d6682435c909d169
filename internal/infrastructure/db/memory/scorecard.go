package memory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// ObjectiveRepository implements ports.ObjectiveRepository.
type ObjectiveRepository struct{ s *Store }

func (s *Store) Objectives() *ObjectiveRepository { return &ObjectiveRepository{s: s} }

func (r *ObjectiveRepository) ListByOrganization(_ context.Context, orgID int64) ([]domain.Objective, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Objective{}
	for _, o := range r.s.objectives {
		if o.OrganizationID == orgID {
			out = append(out, o)
		}
	}
	sortByID(out, func(o domain.Objective) int64 { return o.ID })
	return out, nil
}

func (r *ObjectiveRepository) Create(_ context.Context, obj *domain.Objective) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orgs[obj.OrganizationID]; !ok {
		return fmt.Errorf("create objective: %w: organization %d does not exist", domain.ErrInvalidInput, obj.OrganizationID)
	}
	obj.ID = r.s.nextID()
	if obj.CreatedAt.IsZero() {
		obj.CreatedAt = r.s.now().UTC()
	}
	r.s.objectives[obj.ID] = *obj
	return nil
}

func (r *ObjectiveRepository) Get(_ context.Context, id, orgID int64) (*domain.Objective, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.objectives[id]
	if !ok || o.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (r *ObjectiveRepository) Update(_ context.Context, obj *domain.Objective) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.objectives[obj.ID]
	if !ok || cur.OrganizationID != obj.OrganizationID {
		return domain.ErrNotFound
	}
	cur.Target = obj.Target
	cur.Progress = obj.Progress
	cur.Semaphore = obj.Semaphore
	r.s.objectives[obj.ID] = cur
	return nil
}

// ProjectRepository implements ports.ProjectRepository.
type ProjectRepository struct{ s *Store }

func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s: s} }

func (r *ProjectRepository) ListByOrganization(_ context.Context, orgID int64) ([]domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []domain.Project{}
	for _, p := range r.s.projects {
		if p.OrganizationID == orgID {
			out = append(out, p)
		}
	}
	sortByID(out, func(p domain.Project) int64 { return p.ID })
	return out, nil
}

func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orgs[p.OrganizationID]; !ok {
		return fmt.Errorf("create project: %w: organization %d does not exist", domain.ErrInvalidInput, p.OrganizationID)
	}
	if _, ok := r.s.objectives[p.ObjectiveID]; !ok {
		return fmt.Errorf("create project: %w", domain.ErrInvalidObjective)
	}
	if p.ZoneID != nil {
		if _, ok := r.s.zones[*p.ZoneID]; !ok {
			return fmt.Errorf("create project: %w", domain.ErrInvalidZone)
		}
	}
	p.ID = r.s.nextID()
	r.s.projects[p.ID] = *p
	return nil
}

func (r *ProjectRepository) Get(_ context.Context, id, orgID int64) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok || p.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// FinanceRepository implements ports.FinanceRepository.
type FinanceRepository struct{ s *Store }

func (s *Store) Finance() *FinanceRepository { return &FinanceRepository{s: s} }

func (r *FinanceRepository) CreateTransaction(_ context.Context, t *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orgs[t.OrganizationID]; !ok {
		return fmt.Errorf("create transaction: %w: organization %d does not exist", domain.ErrInvalidInput, t.OrganizationID)
	}
	t.ID = r.s.nextID()
	r.s.transactions[t.ID] = *t
	return nil
}

func (r *FinanceRepository) CreateExpense(_ context.Context, e *domain.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[e.ProjectID]; !ok {
		return fmt.Errorf("create expense: %w", domain.ErrInvalidProject)
	}
	e.ID = r.s.nextID()
	r.s.expenses[e.ID] = *e
	return nil
}

func (r *FinanceRepository) Totals(_ context.Context, orgID int64) (domain.FinancialTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	totals := domain.FinancialTotals{
		Wallet:    decimal.Zero,
		Committed: decimal.Zero,
		Executed:  decimal.Zero,
	}
	for _, t := range r.s.transactions {
		if t.OrganizationID == orgID {
			totals.Wallet = totals.Wallet.Add(t.Amount)
		}
	}
	for _, p := range r.s.projects {
		if p.OrganizationID == orgID {
			totals.Committed = totals.Committed.Add(p.Budget)
		}
	}
	for _, e := range r.s.expenses {
		if p, ok := r.s.projects[e.ProjectID]; ok && p.OrganizationID == orgID {
			totals.Executed = totals.Executed.Add(e.Amount)
		}
	}
	return totals, nil
}

// MeasurementRepository implements ports.MeasurementRepository.
type MeasurementRepository struct{ s *Store }

func (s *Store) Measurements() *MeasurementRepository { return &MeasurementRepository{s: s} }

func (r *MeasurementRepository) Latest(_ context.Context, orgID int64, metric string) (*domain.Measurement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var latest *domain.Measurement
	for _, m := range r.s.measurements {
		if m.OrganizationID != orgID || m.Metric != metric {
			continue
		}
		if latest == nil || m.Date.After(latest.Date) || (m.Date.Equal(latest.Date) && m.ID > latest.ID) {
			m := m
			latest = &m
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}
