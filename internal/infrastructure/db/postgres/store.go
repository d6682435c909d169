// Package postgres is the production Domain Store. Every store shares one
// pgx pool; each method acquires a connection for the duration of its
// statement or transaction only.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Stores bundles every repository over a shared pool.
type Stores struct {
	Pool          *pgxpool.Pool
	Users         *UserStore
	Organizations *OrganizationStore
	Zones         *ZoneStore
	Objectives    *ObjectiveStore
	Projects      *ProjectStore
	Finance       *FinanceStore
	Tickets       *TicketStore
	Measurements  *MeasurementStore
}

func NewStores(pool *pgxpool.Pool, log zerolog.Logger) *Stores {
	return &Stores{
		Pool:          pool,
		Users:         NewUserStore(pool),
		Organizations: NewOrganizationStore(pool),
		Zones:         NewZoneStore(pool),
		Objectives:    NewObjectiveStore(pool),
		Projects:      NewProjectStore(pool),
		Finance:       NewFinanceStore(pool),
		Tickets:       NewTicketStore(pool, log),
		Measurements:  NewMeasurementStore(pool),
	}
}

// Ping is used by the readiness probe.
func (s *Stores) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Stores) Close() {
	s.Pool.Close()
}
