//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

func setupPostgresContainer(t *testing.T, ctx context.Context) (*Stores, func()) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pool, err := NewPool(ctx, &PoolConfig{
		ConnString: fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port()),
	})
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, pool, zerolog.Nop()))
	// applying twice is a no-op
	require.NoError(t, RunMigrations(ctx, pool, zerolog.Nop()))

	stores := NewStores(pool, zerolog.Nop())
	cleanup := func() {
		stores.Close()
		_ = container.Terminate(ctx)
	}
	return stores, cleanup
}

func TestIntegration_DomainStore(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	inbox, err := s.Organizations.Get(ctx, domain.GeneralInboxOrganizationID)
	require.NoError(t, err, "general inbox must be seeded")

	orgA := &domain.Organization{Name: "Org A", Type: domain.OrganizationNGO}
	require.NoError(t, s.Organizations.Create(ctx, orgA))
	orgB := &domain.Organization{Name: "Org B", Type: domain.OrganizationCompany}
	require.NoError(t, s.Organizations.Create(ctx, orgB))
	zone := &domain.Zone{Name: "Lerma", Status: "ACTIVA"}
	require.NoError(t, s.Zones.Create(ctx, zone))
	require.NoError(t, s.Zones.AddCoverage(ctx, orgA.ID, zone.ID))
	require.NoError(t, s.Zones.AddCoverage(ctx, orgB.ID, zone.ID))
	require.NoError(t, s.Zones.AddCoverage(ctx, orgB.ID, zone.ID))

	t.Run("email unique across organizations", func(t *testing.T) {
		require.NoError(t, s.Users.Create(ctx, &domain.User{OrganizationID: orgA.ID, FullName: "A", Email: "dup@x.mx", PasswordHash: "h"}))
		err := s.Users.Create(ctx, &domain.User{OrganizationID: orgB.ID, FullName: "B", Email: "dup@x.mx", PasswordHash: "h"})
		require.ErrorIs(t, err, domain.ErrEmailTaken)

		u, err := s.Users.FindByEmail(ctx, "dup@x.mx")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleOperator, u.Role)
	})

	t.Run("coverage", func(t *testing.T) {
		orgs, err := s.Zones.CoveringOrganizations(ctx, zone.ID)
		require.NoError(t, err)
		require.Len(t, orgs, 2)
		assert.Equal(t, orgA.ID, orgs[0].ID)
	})

	t.Run("fresh financial summary is zero", func(t *testing.T) {
		totals, err := s.Finance.Totals(ctx, orgB.ID)
		require.NoError(t, err)
		assert.True(t, totals.Wallet.IsZero())
		assert.True(t, totals.Committed.IsZero())
		assert.True(t, totals.Executed.IsZero())
	})

	var project *domain.Project
	t.Run("objective, project and finance", func(t *testing.T) {
		obj := &domain.Objective{OrganizationID: orgA.ID, Title: "Saneamiento", Perspective: domain.PerspectiveProcess,
			Target: decimal.NewFromInt(100), Progress: decimal.NewFromInt(40)}
		obj.Recompute()
		require.NoError(t, s.Objectives.Create(ctx, obj))

		got, err := s.Objectives.Get(ctx, obj.ID, orgA.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.SemaphoreYellow, got.Semaphore)
		_, err = s.Objectives.Get(ctx, obj.ID, orgB.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		project = &domain.Project{ObjectiveID: obj.ID, OrganizationID: orgA.ID, ZoneID: &zone.ID, Name: "Brigada",
			Budget: decimal.RequireFromString("1500.50"), Status: domain.ProjectActive, Priority: domain.PriorityHigh}
		require.NoError(t, s.Projects.Create(ctx, project))
		require.NoError(t, s.Finance.CreateTransaction(ctx, &domain.Transaction{OrganizationID: orgA.ID, Amount: decimal.NewFromInt(5000), Type: domain.TransactionPublic}))
		require.NoError(t, s.Finance.CreateExpense(ctx, &domain.Expense{ProjectID: project.ID, Amount: decimal.RequireFromString("99.99"), Concept: "Costales", Category: domain.ExpenseMaterials}))

		totals, err := s.Finance.Totals(ctx, orgA.ID)
		require.NoError(t, err)
		assert.True(t, totals.Wallet.Equal(decimal.NewFromInt(5000)))
		assert.True(t, totals.Committed.Equal(decimal.RequireFromString("1500.50")))
		assert.True(t, totals.Executed.Equal(decimal.RequireFromString("99.99")))
	})

	t.Run("ticket lifecycle", func(t *testing.T) {
		lat := decimal.RequireFromString("19.283400")
		tk := &domain.Ticket{
			OrganizationID: inbox.ID,
			ZoneID:         &zone.ID,
			ReporterID:     "device-1",
			IncidentType:   domain.IncidentGarbage,
			Status:         domain.TicketReceived,
			Priority:       domain.PriorityMedium,
			Latitude:       &lat,
			Evidence:       []domain.Evidence{{URL: "https://cdn/a.jpg", FileType: domain.FileImage}},
		}
		require.NoError(t, s.Tickets.Create(ctx, tk))

		moved, err := s.Tickets.Transfer(ctx, tk.ID, inbox.ID, orgA.ID)
		require.NoError(t, err)
		assert.Equal(t, orgA.ID, moved.OrganizationID)
		require.Len(t, moved.Evidence, 1)
		require.NotNil(t, moved.Latitude)
		assert.True(t, moved.Latitude.Equal(lat))

		moved.ProjectID = &project.ID
		moved.SetStatus(domain.TicketClosed, moved.CreatedAt)
		require.NoError(t, s.Tickets.Update(ctx, moved))

		got, err := s.Tickets.Get(ctx, tk.ID, orgA.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketClosed, got.Status)
		assert.NotNil(t, got.ClosedAt)

		back, err := s.Tickets.Transfer(ctx, tk.ID, orgA.ID, orgB.ID)
		require.NoError(t, err)
		assert.Nil(t, back.ProjectID)
		assert.Nil(t, back.ClosedAt)
		assert.Equal(t, domain.TicketReceived, back.Status)

		_, err = s.Tickets.Transfer(ctx, tk.ID, orgB.ID, 987654)
		assert.ErrorIs(t, err, domain.ErrInvalidTarget)

		list, err := s.Tickets.List(ctx, ports.TicketFilter{OrganizationID: orgA.ID})
		require.NoError(t, err)
		assert.Empty(t, list)

		mine, err := s.Tickets.ListByReporter(ctx, "device-1")
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		resolved, active, err := s.Tickets.CountByState(ctx, orgB.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, resolved)
		assert.EqualValues(t, 1, active)
	})

	t.Run("latest measurement", func(t *testing.T) {
		_, err := s.Measurements.Latest(ctx, orgA.ID, domain.MetricCitizenSatisfaction)
		require.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, s.Measurements.Record(ctx, &domain.Measurement{OrganizationID: orgA.ID, Metric: domain.MetricCitizenSatisfaction, Value: decimal.NewFromInt(80)}))
		require.NoError(t, s.Measurements.Record(ctx, &domain.Measurement{OrganizationID: orgA.ID, Metric: domain.MetricCitizenSatisfaction, Value: decimal.NewFromInt(92)}))

		m, err := s.Measurements.Latest(ctx, orgA.ID, domain.MetricCitizenSatisfaction)
		require.NoError(t, err)
		assert.True(t, m.Value.Equal(decimal.NewFromInt(92)))
	})
}
