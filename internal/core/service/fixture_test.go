package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/infrastructure/db/memory"
)

type fixture struct {
	store     *memory.Store
	cache     *memory.SummaryCache
	dedup     *memory.TicketDedup
	tokens    *TokenService
	creds     *Credentials
	auth      *AuthService
	guard     *AccessGuard
	tickets   *TicketService
	scorecard *ScorecardService

	inbox  domain.Organization // id 1
	orgA   domain.Organization
	orgB   domain.Organization
	zone   domain.Zone
	zoneID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewStore()
	cache := memory.NewSummaryCache()
	dedup := memory.NewTicketDedup()

	tokens, err := NewTokenService("test-secret", "HS256", time.Hour)
	require.NoError(t, err)
	creds := NewCredentials(bcrypt.MinCost)

	f := &fixture{
		store:  store,
		cache:  cache,
		dedup:  dedup,
		tokens: tokens,
		creds:  creds,
		auth:   NewAuthService(store.Users(), store.Organizations(), creds, tokens, log),
		guard:  NewAccessGuard(tokens, store.Users(), log),
		tickets: NewTicketService(TicketDeps{
			Tickets:  store.Tickets(),
			Projects: store.Projects(),
			Orgs:     store.Organizations(),
			Zones:    store.Zones(),
			Finance:  store.Finance(),
			Cache:    cache,
			Dedup:    dedup,
		}, log),
		scorecard: NewScorecardService(ScorecardDeps{
			Objectives:   store.Objectives(),
			Projects:     store.Projects(),
			Finance:      store.Finance(),
			Tickets:      store.Tickets(),
			Measurements: store.Measurements(),
			Cache:        cache,
		}, log),
	}

	f.inbox = store.AddOrganization(domain.Organization{ID: domain.GeneralInboxOrganizationID, Name: "Buzón General"})
	f.orgA = store.AddOrganization(domain.Organization{Name: "Org A", Type: domain.OrganizationGovernment})
	f.orgB = store.AddOrganization(domain.Organization{Name: "Org B", Type: domain.OrganizationUniversity})
	f.zone = store.AddZone(domain.Zone{Name: "Lerma", Status: "ACTIVA"})
	f.zoneID = f.zone.ID
	return f
}

// registerUser creates a user directly through the auth service.
func (f *fixture) registerUser(t *testing.T, orgID int64, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), registerInput(orgID, email, role))
	require.NoError(t, err)
	return u
}

// newProject creates an objective and a project for orgID.
func (f *fixture) newProject(t *testing.T, orgID int64) *domain.Project {
	t.Helper()
	ctx := context.Background()
	obj := &domain.Objective{OrganizationID: orgID, Title: "Saneamiento", Perspective: domain.PerspectiveProcess}
	require.NoError(t, f.store.Objectives().Create(ctx, obj))
	p := &domain.Project{ObjectiveID: obj.ID, OrganizationID: orgID, Name: "Brigada", Status: domain.ProjectActive, Priority: domain.PriorityMedium}
	require.NoError(t, f.store.Projects().Create(ctx, p))
	return p
}

// moveTicket puts a ticket straight into orgID's inbox.
func (f *fixture) moveTicket(t *testing.T, ticketID, orgID int64) {
	t.Helper()
	_, err := f.store.Tickets().Transfer(context.Background(), ticketID, f.inbox.ID, orgID)
	require.NoError(t, err)
}
