package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

func seed(t *testing.T) (*Store, domain.Organization, domain.Organization, domain.Zone) {
	t.Helper()
	s := NewStore()
	a := s.AddOrganization(domain.Organization{ID: 1, Name: "Buzón General"})
	b := s.AddOrganization(domain.Organization{Name: "Brigada Norte", Type: domain.OrganizationGovernment})
	z := s.AddZone(domain.Zone{Name: "Lerma", Status: "ACTIVA"})
	return s, a, b, z
}

func TestUserRepository_EmailUniqueAcrossOrganizations(t *testing.T) {
	ctx := context.Background()
	s, a, b, _ := seed(t)
	users := s.Users()

	require.NoError(t, users.Create(ctx, &domain.User{OrganizationID: a.ID, FullName: "Ana", Email: "x@y.mx", PasswordHash: "h"}))
	err := users.Create(ctx, &domain.User{OrganizationID: b.ID, FullName: "Otra", Email: "x@y.mx", PasswordHash: "h"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	u, err := users.FindByEmail(ctx, "x@y.mx")
	require.NoError(t, err)
	assert.Equal(t, a.ID, u.OrganizationID)
	assert.Equal(t, domain.RoleOperator, u.Role)

	_, err = users.FindByEmail(ctx, "nobody@y.mx")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketRepository_ScopedByOrganization(t *testing.T) {
	ctx := context.Background()
	s, a, b, z := seed(t)
	tickets := s.Tickets()

	tk := &domain.Ticket{
		OrganizationID: a.ID,
		ZoneID:         &z.ID,
		ReporterID:     "dev-1",
		IncidentType:   domain.IncidentGarbage,
		Status:         domain.TicketReceived,
		Priority:       domain.PriorityMedium,
		Evidence:       []domain.Evidence{{URL: "https://cdn/a.png", FileType: domain.FileImage}},
	}
	require.NoError(t, tickets.Create(ctx, tk))
	require.NotZero(t, tk.ID)

	got, err := tickets.Get(ctx, tk.ID, a.ID)
	require.NoError(t, err)
	require.Len(t, got.Evidence, 1)
	assert.Equal(t, tk.ID, got.Evidence[0].TicketID)

	_, err = tickets.Get(ctx, tk.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := tickets.List(ctx, ports.TicketFilter{OrganizationID: b.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTicketRepository_TransferResetsOwnership(t *testing.T) {
	ctx := context.Background()
	s, a, b, z := seed(t)
	obj := &domain.Objective{OrganizationID: a.ID, Title: "o", Perspective: domain.PerspectiveProcess}
	require.NoError(t, s.Objectives().Create(ctx, obj))
	p := &domain.Project{ObjectiveID: obj.ID, OrganizationID: a.ID, Name: "p", Status: domain.ProjectActive, Priority: domain.PriorityHigh}
	require.NoError(t, s.Projects().Create(ctx, p))

	tk := &domain.Ticket{OrganizationID: a.ID, ZoneID: &z.ID, ProjectID: &p.ID, ReporterID: "dev", IncidentType: domain.IncidentLeak, Status: domain.TicketInProgress, Priority: domain.PriorityMedium}
	require.NoError(t, s.Tickets().Create(ctx, tk))

	moved, err := s.Tickets().Transfer(ctx, tk.ID, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.OrganizationID)
	assert.Nil(t, moved.ProjectID)
	assert.Equal(t, domain.TicketReceived, moved.Status)

	_, err = s.Tickets().Transfer(ctx, tk.ID, a.ID, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinanceRepository_TotalsFreshOrganization(t *testing.T) {
	s, _, b, _ := seed(t)
	totals, err := s.Finance().Totals(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, totals.Wallet.IsZero())
	assert.True(t, totals.Committed.IsZero())
	assert.True(t, totals.Executed.IsZero())
}

func TestFinanceRepository_TotalsJoinThroughProjects(t *testing.T) {
	ctx := context.Background()
	s, a, b, _ := seed(t)
	obj := &domain.Objective{OrganizationID: a.ID, Title: "o", Perspective: domain.PerspectiveFinancial}
	require.NoError(t, s.Objectives().Create(ctx, obj))
	p := &domain.Project{ObjectiveID: obj.ID, OrganizationID: a.ID, Name: "p", Budget: decimal.NewFromInt(300)}
	require.NoError(t, s.Projects().Create(ctx, p))

	require.NoError(t, s.Finance().CreateTransaction(ctx, &domain.Transaction{OrganizationID: a.ID, Amount: decimal.NewFromInt(1000), Type: domain.TransactionPublic}))
	require.NoError(t, s.Finance().CreateTransaction(ctx, &domain.Transaction{OrganizationID: b.ID, Amount: decimal.NewFromInt(50), Type: domain.TransactionOwn}))
	require.NoError(t, s.Finance().CreateExpense(ctx, &domain.Expense{ProjectID: p.ID, Amount: decimal.RequireFromString("120.50"), Concept: "bolsas", Category: domain.ExpenseMaterials}))

	totals, err := s.Finance().Totals(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, totals.Wallet.Equal(decimal.NewFromInt(1000)))
	assert.True(t, totals.Committed.Equal(decimal.NewFromInt(300)))
	assert.True(t, totals.Executed.Equal(decimal.RequireFromString("120.50")))
}

func TestDeleteOrganization_Cascades(t *testing.T) {
	ctx := context.Background()
	s, _, b, z := seed(t)
	require.NoError(t, s.AddCoverage(b.ID, z.ID))
	require.NoError(t, s.Users().Create(ctx, &domain.User{OrganizationID: b.ID, FullName: "u", Email: "u@b.mx"}))
	obj := &domain.Objective{OrganizationID: b.ID, Title: "o", Perspective: domain.PerspectiveCustomer}
	require.NoError(t, s.Objectives().Create(ctx, obj))

	require.NoError(t, s.deleteOrganization(b.ID))

	_, err := s.Users().FindByEmail(ctx, "u@b.mx")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	orgs, err := s.Zones().CoveringOrganizations(ctx, z.ID)
	require.NoError(t, err)
	assert.Empty(t, orgs)
}

func TestDeleteProject_DetachesTicketsAndDropsExpenses(t *testing.T) {
	ctx := context.Background()
	s, a, _, z := seed(t)
	obj := &domain.Objective{OrganizationID: a.ID, Title: "o", Perspective: domain.PerspectiveProcess}
	require.NoError(t, s.Objectives().Create(ctx, obj))
	p := &domain.Project{ObjectiveID: obj.ID, OrganizationID: a.ID, Name: "p"}
	require.NoError(t, s.Projects().Create(ctx, p))
	require.NoError(t, s.Finance().CreateExpense(ctx, &domain.Expense{ProjectID: p.ID, Amount: decimal.NewFromInt(10), Concept: "c", Category: domain.ExpenseOther}))
	tk := &domain.Ticket{OrganizationID: a.ID, ZoneID: &z.ID, ProjectID: &p.ID, ReporterID: "d", IncidentType: domain.IncidentOdor, Status: domain.TicketAssigned, Priority: domain.PriorityMedium}
	require.NoError(t, s.Tickets().Create(ctx, tk))

	require.NoError(t, s.deleteProject(p.ID))

	got, err := s.Tickets().Get(ctx, tk.ID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ProjectID)
	totals, err := s.Finance().Totals(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, totals.Executed.IsZero())
}

func TestDeleteTicket_RemovesEvidence(t *testing.T) {
	ctx := context.Background()
	s, a, _, z := seed(t)
	tk := &domain.Ticket{OrganizationID: a.ID, ZoneID: &z.ID, ReporterID: "d", IncidentType: domain.IncidentOther, Status: domain.TicketReceived, Priority: domain.PriorityMedium,
		Evidence: []domain.Evidence{{URL: "a.png"}, {URL: "b.mp4", FileType: domain.FileVideo}}}
	require.NoError(t, s.Tickets().Create(ctx, tk))
	require.Equal(t, 2, s.EvidenceCount())

	require.NoError(t, s.deleteTicket(tk.ID))
	assert.Equal(t, 0, s.EvidenceCount())
}

func TestDeleteZone_NullsReferences(t *testing.T) {
	ctx := context.Background()
	s, a, _, z := seed(t)
	tk := &domain.Ticket{OrganizationID: a.ID, ZoneID: &z.ID, ReporterID: "d", IncidentType: domain.IncidentOther, Status: domain.TicketReceived, Priority: domain.PriorityMedium}
	require.NoError(t, s.Tickets().Create(ctx, tk))

	require.NoError(t, s.deleteZone(z.ID))

	got, err := s.Tickets().Get(ctx, tk.ID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ZoneID)
}

func TestMeasurementRepository_Latest(t *testing.T) {
	ctx := context.Background()
	s, a, _, _ := seed(t)
	_, err := s.Measurements().Latest(ctx, a.ID, domain.MetricCitizenSatisfaction)
	require.ErrorIs(t, err, domain.ErrNotFound)

	first, err := s.AddMeasurement(domain.Measurement{OrganizationID: a.ID, Metric: domain.MetricCitizenSatisfaction, Value: decimal.NewFromInt(70)})
	require.NoError(t, err)
	_, err = s.AddMeasurement(domain.Measurement{OrganizationID: a.ID, Metric: domain.MetricCitizenSatisfaction, Value: decimal.NewFromInt(90), Date: first.Date.Add(1)})
	require.NoError(t, err)

	m, err := s.Measurements().Latest(ctx, a.ID, domain.MetricCitizenSatisfaction)
	require.NoError(t, err)
	assert.True(t, m.Value.Equal(decimal.NewFromInt(90)))
}
