package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// CreatePublicTicketInput is the untrusted citizen report.
type CreatePublicTicketInput struct {
	ReporterID          string
	Description         *string
	LocationDescription *string
	IncidentType        string
	ZoneID              int64
	Latitude            *decimal.Decimal
	Longitude           *decimal.Decimal
	EvidenceURLs        []string
	IdempotencyKey      string
}

// InboxInput carries the caller's organization and optional filters.
type InboxInput struct {
	OrganizationID int64
	Status         string // optional
	ZoneID         *int64 // optional
}

// AssignTicketInput carries an internal update. Nil fields are left as is.
type AssignTicketInput struct {
	TicketID       int64
	OrganizationID int64
	ProjectID      *int64
	Priority       *string
	Status         *string
}

// TransferTicketInput moves a ticket to another organization.
type TransferTicketInput struct {
	TicketID             int64
	OrganizationID       int64
	TargetOrganizationID int64
	Notes                *string
}

// RegisterExpenseInput records spending against a project.
type RegisterExpenseInput struct {
	ProjectID      int64
	OrganizationID int64
	Amount         decimal.Decimal
	Concept        string
	Category       string
	EvidenceURL    *string
}

// TicketService is the ticket lifecycle manager.
type TicketService interface {
	CreatePublic(ctx context.Context, in CreatePublicTicketInput) (*domain.Ticket, error)
	CitizenStatus(ctx context.Context, reporterID string) ([]domain.Ticket, error)
	Inbox(ctx context.Context, in InboxInput) ([]domain.Ticket, error)
	Detail(ctx context.Context, ticketID, orgID int64) (*domain.Ticket, error)
	AssignToProject(ctx context.Context, in AssignTicketInput) (*domain.Ticket, error)
	Transfer(ctx context.Context, in TransferTicketInput) (*domain.Ticket, error)
	RegisterExpense(ctx context.Context, in RegisterExpenseInput) (*domain.Expense, error)
	CoverageSuggestions(ctx context.Context, zoneID, callerOrgID int64) ([]domain.Organization, error)
	Zones(ctx context.Context) ([]domain.Zone, error)
}
