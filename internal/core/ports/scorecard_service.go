package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// CreateObjectiveInput carries a new objective. Any semaphore a client sends
// is ignored; it is always derived.
type CreateObjectiveInput struct {
	OrganizationID int64
	Title          string
	Perspective    string
	KPIName        *string
	Target         decimal.Decimal
	Progress       decimal.Decimal
}

// UpdateObjectiveInput patches progress and/or target.
type UpdateObjectiveInput struct {
	ObjectiveID    int64
	OrganizationID int64
	Target         *decimal.Decimal
	Progress       *decimal.Decimal
}

// CreateTransactionInput injects funds into the caller's organization.
type CreateTransactionInput struct {
	OrganizationID int64
	Source         *string
	Amount         decimal.Decimal
	Type           string
	Date           *time.Time
}

// CreateProjectInput creates a project linked to one of the caller's
// objectives.
type CreateProjectInput struct {
	OrganizationID int64
	ObjectiveID    int64
	ZoneID         *int64
	Name           string
	Budget         decimal.Decimal
	Status         string // empty means PLANEACION
	Priority       string // empty means MEDIA
	StartDate      *time.Time
	EndDate        *time.Time
}

// ScorecardService is the strategy dashboard.
type ScorecardService interface {
	ListObjectives(ctx context.Context, orgID int64) ([]domain.Objective, error)
	CreateObjective(ctx context.Context, in CreateObjectiveInput) (*domain.Objective, error)
	UpdateObjective(ctx context.Context, in UpdateObjectiveInput) (*domain.Objective, error)
	FinancialSummary(ctx context.Context, orgID int64) (*domain.FinancialSummary, error)
	CreateTransaction(ctx context.Context, in CreateTransactionInput) (*domain.Transaction, error)
	ListProjects(ctx context.Context, orgID int64) ([]domain.Project, error)
	CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	ImpactMetrics(ctx context.Context, orgID int64) (*domain.ImpactMetrics, error)
}
