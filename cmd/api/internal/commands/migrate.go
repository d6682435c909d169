package commands

import (
	"context"
)

type MigrateCmd struct {
	DatabaseFlags
}

func (m *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	pool, log, err := m.open(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	log.Info().Str("version", globals.Version).Msg("applying migrations")
	return runMigrations(ctx, pool, log)
}
