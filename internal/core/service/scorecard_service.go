package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// ScorecardService backs the strategy dashboard: BSC objectives, finances,
// projects and impact counters. Every query is scoped to the caller's
// organization.
type ScorecardService struct {
	objectives   ports.ObjectiveRepository
	projects     ports.ProjectRepository
	finance      ports.FinanceRepository
	tickets      ports.TicketRepository
	measurements ports.MeasurementRepository
	cache        ports.SummaryCache
	log          zerolog.Logger
	now          func() time.Time
}

// ScorecardDeps groups the collaborators of NewScorecardService. Cache is
// optional.
type ScorecardDeps struct {
	Objectives   ports.ObjectiveRepository
	Projects     ports.ProjectRepository
	Finance      ports.FinanceRepository
	Tickets      ports.TicketRepository
	Measurements ports.MeasurementRepository
	Cache        ports.SummaryCache
}

func NewScorecardService(deps ScorecardDeps, log zerolog.Logger) *ScorecardService {
	return &ScorecardService{
		objectives:   deps.Objectives,
		projects:     deps.Projects,
		finance:      deps.Finance,
		tickets:      deps.Tickets,
		measurements: deps.Measurements,
		cache:        deps.Cache,
		log:          log,
		now:          time.Now,
	}
}

func (s *ScorecardService) ListObjectives(ctx context.Context, orgID int64) ([]domain.Objective, error) {
	list, err := s.objectives.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list objectives: %w", err)
	}
	return list, nil
}

func (s *ScorecardService) CreateObjective(ctx context.Context, in ports.CreateObjectiveInput) (*domain.Objective, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("create objective: %w: title is required", domain.ErrInvalidInput)
	}
	perspective := domain.Perspective(in.Perspective)
	if !perspective.Valid() {
		return nil, fmt.Errorf("create objective: %w: unknown perspective %q", domain.ErrInvalidInput, in.Perspective)
	}
	if in.Target.IsNegative() || in.Progress.IsNegative() {
		return nil, fmt.Errorf("create objective: %w: target and progress must not be negative", domain.ErrInvalidInput)
	}

	obj := &domain.Objective{
		OrganizationID: in.OrganizationID,
		Title:          in.Title,
		Perspective:    perspective,
		KPIName:        in.KPIName,
		Target:         in.Target,
		Progress:       in.Progress,
		CreatedAt:      s.now().UTC(),
	}
	obj.Recompute()

	if err := s.objectives.Create(ctx, obj); err != nil {
		return nil, fmt.Errorf("create objective: %w", err)
	}
	s.log.Info().Int64("objective_id", obj.ID).Int64("org_id", obj.OrganizationID).Str("semaphore", string(obj.Semaphore)).Msg("objective created")
	return obj, nil
}

// UpdateObjective applies new progress and/or target and re-derives the
// semaphore before persisting.
func (s *ScorecardService) UpdateObjective(ctx context.Context, in ports.UpdateObjectiveInput) (*domain.Objective, error) {
	if (in.Target != nil && in.Target.IsNegative()) || (in.Progress != nil && in.Progress.IsNegative()) {
		return nil, fmt.Errorf("update objective: %w: target and progress must not be negative", domain.ErrInvalidInput)
	}

	obj, err := s.objectives.Get(ctx, in.ObjectiveID, in.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("update objective: %w", err)
	}
	if in.Progress != nil {
		obj.Progress = *in.Progress
	}
	if in.Target != nil {
		obj.Target = *in.Target
	}
	obj.Recompute()

	if err := s.objectives.Update(ctx, obj); err != nil {
		return nil, fmt.Errorf("update objective: %w", err)
	}
	s.log.Info().Int64("objective_id", obj.ID).Str("semaphore", string(obj.Semaphore)).Msg("objective updated")
	return obj, nil
}

// FinancialSummary is computed from the raw rows on every miss. The cache
// is best-effort: its errors never fail the request.
func (s *ScorecardService) FinancialSummary(ctx context.Context, orgID int64) (*domain.FinancialSummary, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, orgID)
		if err != nil {
			s.log.Warn().Err(err).Int64("org_id", orgID).Msg("summary cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	totals, err := s.finance.Totals(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("financial summary: %w", err)
	}
	summary := totals.Summarize()

	if s.cache != nil {
		if err := s.cache.Set(ctx, orgID, summary); err != nil {
			s.log.Warn().Err(err).Int64("org_id", orgID).Msg("summary cache write failed")
		}
	}
	return &summary, nil
}

func (s *ScorecardService) CreateTransaction(ctx context.Context, in ports.CreateTransactionInput) (*domain.Transaction, error) {
	kind := domain.TransactionType(in.Type)
	if !kind.Valid() {
		return nil, fmt.Errorf("create transaction: %w: unknown type %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Amount.IsZero() {
		return nil, fmt.Errorf("create transaction: %w: amount must not be zero", domain.ErrInvalidInput)
	}

	date := s.now().UTC().Truncate(24 * time.Hour)
	if in.Date != nil {
		date = in.Date.UTC()
	}
	tx := &domain.Transaction{
		OrganizationID: in.OrganizationID,
		Source:         in.Source,
		Amount:         in.Amount,
		Type:           kind,
		Date:           date,
	}
	if err := s.finance.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	invalidateSummary(ctx, s.cache, s.log, in.OrganizationID)

	s.log.Info().Int64("transaction_id", tx.ID).Int64("org_id", tx.OrganizationID).Str("amount", tx.Amount.String()).Msg("transaction registered")
	return tx, nil
}

func (s *ScorecardService) ListProjects(ctx context.Context, orgID int64) ([]domain.Project, error) {
	list, err := s.projects.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return list, nil
}

func (s *ScorecardService) CreateProject(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("create project: %w: name is required", domain.ErrInvalidInput)
	}
	if in.Budget.IsNegative() {
		return nil, fmt.Errorf("create project: %w: budget must not be negative", domain.ErrInvalidInput)
	}
	status := domain.ProjectPlanning
	if in.Status != "" {
		status = domain.ProjectStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("create project: %w: unknown status %q", domain.ErrInvalidInput, in.Status)
		}
	}
	priority := domain.PriorityMedium
	if in.Priority != "" {
		priority = domain.Priority(in.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("create project: %w: unknown priority %q", domain.ErrInvalidInput, in.Priority)
		}
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, fmt.Errorf("create project: %w: end date before start date", domain.ErrInvalidInput)
	}

	if _, err := s.objectives.Get(ctx, in.ObjectiveID, in.OrganizationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("create project: %w", domain.ErrInvalidObjective)
		}
		return nil, fmt.Errorf("create project: %w", err)
	}

	p := &domain.Project{
		ObjectiveID:    in.ObjectiveID,
		OrganizationID: in.OrganizationID,
		ZoneID:         in.ZoneID,
		Name:           in.Name,
		Budget:         in.Budget,
		Status:         status,
		Priority:       priority,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	invalidateSummary(ctx, s.cache, s.log, in.OrganizationID)

	s.log.Info().Int64("project_id", p.ID).Int64("org_id", p.OrganizationID).Msg("project created")
	return p, nil
}

func (s *ScorecardService) ImpactMetrics(ctx context.Context, orgID int64) (*domain.ImpactMetrics, error) {
	resolved, active, err := s.tickets.CountByState(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("impact metrics: %w", err)
	}

	satisfaction := decimal.Zero
	m, err := s.measurements.Latest(ctx, orgID, domain.MetricCitizenSatisfaction)
	switch {
	case err == nil:
		satisfaction = m.Value
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("impact metrics: %w", err)
	}

	return &domain.ImpactMetrics{
		ResolvedTickets:     resolved,
		ActiveTickets:       active,
		CitizenSatisfaction: satisfaction,
	}, nil
}
