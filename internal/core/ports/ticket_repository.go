package ports

import (
	"context"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// TicketFilter carries the inbox query. OrganizationID is always enforced.
type TicketFilter struct {
	OrganizationID int64
	Status         *domain.TicketStatus // optional
	ZoneID         *int64               // optional
}

// TicketRepository defines persistence operations for tickets.
type TicketRepository interface {
	// Create inserts the ticket together with its evidence in one commit.
	Create(ctx context.Context, t *domain.Ticket) error
	// List returns matching tickets ordered by creation time, newest first.
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	// Get returns domain.ErrNotFound when the ticket does not exist or is
	// owned by another organization.
	Get(ctx context.Context, id, orgID int64) (*domain.Ticket, error)
	// Update writes project, status, priority and closure timestamp of a
	// ticket still owned by t.OrganizationID.
	Update(ctx context.Context, t *domain.Ticket) error
	// Transfer moves the ticket from fromOrg to toOrg, clears its project,
	// resets its status to RECIBIDO and clears the closure timestamp, all in
	// one statement.
	Transfer(ctx context.Context, id, fromOrg, toOrg int64) (*domain.Ticket, error)
	// ListByReporter returns the tickets filed by a citizen device, newest
	// first.
	ListByReporter(ctx context.Context, reporterID string) ([]domain.Ticket, error)
	// CountByState returns the resolved and the active ticket counts.
	CountByState(ctx context.Context, orgID int64) (resolved, active int64, err error)
}
