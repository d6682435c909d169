package ports

import (
	"context"
	"io"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// SummaryCache stores computed financial summaries. Every write that touches
// an organization's transactions, projects or expenses must call Invalidate.
type SummaryCache interface {
	Get(ctx context.Context, orgID int64) (*domain.FinancialSummary, bool, error)
	Set(ctx context.Context, orgID int64, s domain.FinancialSummary) error
	Invalidate(ctx context.Context, orgID int64) error
}

// TicketDedup remembers which ticket a public submission created so that a
// retried submission with the same idempotency key does not duplicate it.
type TicketDedup interface {
	Lookup(ctx context.Context, reporterID, key string) (ticketID int64, found bool, err error)
	// Remember records ticketID unless the key is already taken.
	Remember(ctx context.Context, reporterID, key string, ticketID int64) error
	// Replace overwrites a key whose ticket no longer resolves.
	Replace(ctx context.Context, reporterID, key string, ticketID int64) error
}

// BlobStore is the opaque "store bytes, get URL" capability.
type BlobStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader, size int64) (url string, err error)
}

// BlobReader is implemented by blob backends that serve their own objects.
type BlobReader interface {
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}
