package commands

import (
	"context"
	"fmt"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/service"
	"github.com/cuenca-resiliencia/erp-api/internal/infrastructure/db/postgres"
)

// BootstrapCmd creates what the API cannot: an organization together with
// its first governance user, plus the zones it covers.
type BootstrapCmd struct {
	DatabaseFlags

	OrgName  string   `help:"Organization name." required:""`
	OrgType  string   `help:"Organization type." enum:"ONG,GOBIERNO,UNIVERSIDAD,EMPRESA" default:"GOBIERNO"`
	FullName string   `help:"Full name of the governance user." required:""`
	Email    string   `help:"Email of the governance user." required:""`
	Password string   `help:"Password of the governance user." env:"BOOTSTRAP_PASSWORD" required:""`
	Zones    []string `help:"Zones covered by the organization; created when missing." name:"zone"`
}

func (b *BootstrapCmd) Run(ctx context.Context, globals *Globals) error {
	pool, log, err := b.open(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := runMigrations(ctx, pool, log); err != nil {
		return err
	}
	stores := postgres.NewStores(pool, log)

	org := &domain.Organization{Name: b.OrgName, Type: domain.OrganizationType(b.OrgType)}
	if err := stores.Organizations.Create(ctx, org); err != nil {
		return fmt.Errorf("create organization: %w", err)
	}

	hash, err := service.NewCredentials(0).Hash(b.Password)
	if err != nil {
		return err
	}
	user := &domain.User{
		OrganizationID: org.ID,
		FullName:       b.FullName,
		Email:          b.Email,
		PasswordHash:   hash,
		Role:           domain.RoleGovernance,
	}
	if err := stores.Users.Create(ctx, user); err != nil {
		return fmt.Errorf("create governance user: %w", err)
	}

	existing, err := stores.Zones.List(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]int64, len(existing))
	for _, z := range existing {
		byName[z.Name] = z.ID
	}
	for _, name := range b.Zones {
		id, ok := byName[name]
		if !ok {
			zone := &domain.Zone{Name: name, Status: "ACTIVA"}
			if err := stores.Zones.Create(ctx, zone); err != nil {
				return fmt.Errorf("create zone %q: %w", name, err)
			}
			id = zone.ID
		}
		if err := stores.Zones.AddCoverage(ctx, org.ID, id); err != nil {
			return fmt.Errorf("cover zone %q: %w", name, err)
		}
	}

	log.Info().
		Str("version", globals.Version).
		Int64("org_id", org.ID).
		Int64("user_id", user.ID).
		Int("zones", len(b.Zones)).
		Msg("organization bootstrapped")
	return nil
}
