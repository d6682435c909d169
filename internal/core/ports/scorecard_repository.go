package ports

import (
	"context"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// ObjectiveRepository persists BSC objectives. Lookups are always scoped to
// an organization; a foreign objective is reported as domain.ErrNotFound.
type ObjectiveRepository interface {
	ListByOrganization(ctx context.Context, orgID int64) ([]domain.Objective, error)
	Create(ctx context.Context, obj *domain.Objective) error
	Get(ctx context.Context, id, orgID int64) (*domain.Objective, error)
	// Update writes target, progress and semaphore in a single statement.
	Update(ctx context.Context, obj *domain.Objective) error
}

// ProjectRepository persists projects, scoped by organization.
type ProjectRepository interface {
	ListByOrganization(ctx context.Context, orgID int64) ([]domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, id, orgID int64) (*domain.Project, error)
}

// FinanceRepository persists money movements and computes the aggregates of
// the financial summary.
type FinanceRepository interface {
	CreateTransaction(ctx context.Context, t *domain.Transaction) error
	CreateExpense(ctx context.Context, e *domain.Expense) error
	// Totals returns zero for every aggregate that has no rows.
	Totals(ctx context.Context, orgID int64) (domain.FinancialTotals, error)
}

// MeasurementRepository reads the KPI feed.
type MeasurementRepository interface {
	// Latest returns the most recent measurement of metric for the
	// organization, or domain.ErrNotFound.
	Latest(ctx context.Context, orgID int64, metric string) (*domain.Measurement, error)
}
