package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// TicketService drives the ticket lifecycle: public intake, the
// organization inbox, project assignment and cross-organization transfer.
type TicketService struct {
	tickets  ports.TicketRepository
	projects ports.ProjectRepository
	orgs     ports.OrganizationRepository
	zones    ports.ZoneRepository
	finance  ports.FinanceRepository
	cache    ports.SummaryCache
	dedup    ports.TicketDedup
	metrics  TicketMetrics
	log      zerolog.Logger
	now      func() time.Time
}

// TicketMetrics receives lifecycle counters. A nil value disables them.
type TicketMetrics interface {
	TicketCreated(incident string)
	TicketTransferred()
	TicketStatusChanged(status string)
}

// TicketDeps groups the collaborators of NewTicketService. Cache, Dedup
// and Metrics are optional.
type TicketDeps struct {
	Tickets  ports.TicketRepository
	Projects ports.ProjectRepository
	Orgs     ports.OrganizationRepository
	Zones    ports.ZoneRepository
	Finance  ports.FinanceRepository
	Cache    ports.SummaryCache
	Dedup    ports.TicketDedup
	Metrics  TicketMetrics
}

func NewTicketService(deps TicketDeps, log zerolog.Logger) *TicketService {
	return &TicketService{
		tickets:  deps.Tickets,
		projects: deps.Projects,
		orgs:     deps.Orgs,
		zones:    deps.Zones,
		finance:  deps.Finance,
		cache:    deps.Cache,
		dedup:    deps.Dedup,
		metrics:  deps.Metrics,
		log:      log,
		now:      time.Now,
	}
}

// CreatePublic files a citizen report into the general inbox. When an
// idempotency key is given and was already used by the same reporter, the
// ticket created the first time is returned instead.
func (s *TicketService) CreatePublic(ctx context.Context, in ports.CreatePublicTicketInput) (*domain.Ticket, error) {
	if strings.TrimSpace(in.ReporterID) == "" {
		return nil, fmt.Errorf("create ticket: %w: reporter id is required", domain.ErrInvalidInput)
	}
	incident := domain.IncidentType(in.IncidentType)
	if !incident.Valid() {
		return nil, fmt.Errorf("create ticket: %w: unknown incident type %q", domain.ErrInvalidInput, in.IncidentType)
	}

	staleKey := false
	if in.IdempotencyKey != "" && s.dedup != nil {
		id, found, err := s.dedup.Lookup(ctx, in.ReporterID, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("dedup lookup failed, creating anyway")
		} else if found {
			existing, err := s.findReporterTicket(ctx, in.ReporterID, id)
			if err == nil {
				s.log.Info().Int64("ticket_id", id).Str("idempotency_key", in.IdempotencyKey).Msg("idempotent replay")
				return existing, nil
			}
			s.log.Warn().Err(err).Int64("ticket_id", id).Str("idempotency_key", in.IdempotencyKey).Msg("dedup key points at a missing ticket")
			staleKey = true
		}
	}

	if _, err := s.zones.Get(ctx, in.ZoneID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("create ticket: %w", domain.ErrInvalidZone)
		}
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	now := s.now().UTC()
	zoneID := in.ZoneID
	ticket := &domain.Ticket{
		OrganizationID:      domain.GeneralInboxOrganizationID,
		ZoneID:              &zoneID,
		ReporterID:          in.ReporterID,
		Description:         in.Description,
		LocationDescription: in.LocationDescription,
		IncidentType:        incident,
		Status:              domain.TicketReceived,
		Priority:            domain.PriorityMedium,
		Latitude:            in.Latitude,
		Longitude:           in.Longitude,
		CreatedAt:           now,
	}
	for _, url := range in.EvidenceURLs {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		ticket.Evidence = append(ticket.Evidence, domain.Evidence{
			URL:        url,
			FileType:   domain.FileTypeFromName(url),
			UploadedAt: now,
		})
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		s.log.Error().Err(err).Msg("failed to create ticket")
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	if in.IdempotencyKey != "" && s.dedup != nil {
		remember := s.dedup.Remember
		if staleKey {
			remember = s.dedup.Replace
		}
		if err := remember(ctx, in.ReporterID, in.IdempotencyKey, ticket.ID); err != nil {
			s.log.Warn().Err(err).Int64("ticket_id", ticket.ID).Msg("failed to set dedup key")
		}
	}
	if s.metrics != nil {
		s.metrics.TicketCreated(string(incident))
	}

	s.log.Info().Int64("ticket_id", ticket.ID).Int64("zone_id", zoneID).Str("incident", string(incident)).Msg("ticket created")
	return ticket, nil
}

// findReporterTicket resolves a remembered ticket through the reporter's
// list, since it may have been transferred out of the general inbox, then
// reloads it with its evidence.
func (s *TicketService) findReporterTicket(ctx context.Context, reporterID string, id int64) (*domain.Ticket, error) {
	list, err := s.tickets.ListByReporter(ctx, reporterID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return s.tickets.Get(ctx, id, list[i].OrganizationID)
		}
	}
	return nil, domain.ErrNotFound
}

// CitizenStatus lists the reports filed from a device, newest first.
func (s *TicketService) CitizenStatus(ctx context.Context, reporterID string) ([]domain.Ticket, error) {
	if strings.TrimSpace(reporterID) == "" {
		return nil, fmt.Errorf("citizen status: %w: reporter id is required", domain.ErrInvalidInput)
	}
	list, err := s.tickets.ListByReporter(ctx, reporterID)
	if err != nil {
		return nil, fmt.Errorf("citizen status: %w", err)
	}
	return list, nil
}

func (s *TicketService) Inbox(ctx context.Context, in ports.InboxInput) ([]domain.Ticket, error) {
	filter := ports.TicketFilter{OrganizationID: in.OrganizationID, ZoneID: in.ZoneID}
	if in.Status != "" {
		status := domain.TicketStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("inbox: %w: unknown status %q", domain.ErrInvalidInput, in.Status)
		}
		filter.Status = &status
	}
	list, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("inbox: %w", err)
	}
	return list, nil
}

func (s *TicketService) Detail(ctx context.Context, ticketID, orgID int64) (*domain.Ticket, error) {
	t, err := s.tickets.Get(ctx, ticketID, orgID)
	if err != nil {
		return nil, fmt.Errorf("ticket detail: %w", err)
	}
	return t, nil
}

// AssignToProject links a ticket to one of the caller's projects and
// applies optional priority and status changes. Assigning a project moves
// the ticket to ASIGNADO unless an explicit status is also given.
func (s *TicketService) AssignToProject(ctx context.Context, in ports.AssignTicketInput) (*domain.Ticket, error) {
	var (
		priority domain.Priority
		status   domain.TicketStatus
	)
	if in.Priority != nil {
		priority = domain.Priority(*in.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("assign ticket: %w: unknown priority %q", domain.ErrInvalidInput, *in.Priority)
		}
	}
	if in.Status != nil {
		status = domain.TicketStatus(*in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("assign ticket: %w: unknown status %q", domain.ErrInvalidInput, *in.Status)
		}
	}

	ticket, err := s.tickets.Get(ctx, in.TicketID, in.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("assign ticket: %w", err)
	}

	now := s.now()
	if in.ProjectID != nil {
		if _, err := s.projects.Get(ctx, *in.ProjectID, in.OrganizationID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("assign ticket: %w", domain.ErrInvalidProject)
			}
			return nil, fmt.Errorf("assign ticket: %w", err)
		}
		projectID := *in.ProjectID
		ticket.ProjectID = &projectID
		ticket.SetStatus(domain.TicketAssigned, now)
	}
	if priority != "" {
		ticket.Priority = priority
	}
	if status != "" {
		ticket.SetStatus(status, now)
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("assign ticket: %w", err)
	}
	if s.metrics != nil {
		s.metrics.TicketStatusChanged(string(ticket.Status))
	}

	s.log.Info().
		Int64("ticket_id", ticket.ID).
		Int64("org_id", in.OrganizationID).
		Str("status", string(ticket.Status)).
		Msg("ticket updated")
	return ticket, nil
}

// Transfer hands a ticket over to another organization. The project is
// dropped because it belongs to the previous owner, and the status goes
// back to RECIBIDO. Notes are logged only.
func (s *TicketService) Transfer(ctx context.Context, in ports.TransferTicketInput) (*domain.Ticket, error) {
	if _, err := s.tickets.Get(ctx, in.TicketID, in.OrganizationID); err != nil {
		return nil, fmt.Errorf("transfer ticket: %w", err)
	}
	if _, err := s.orgs.Get(ctx, in.TargetOrganizationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("transfer ticket: %w", domain.ErrInvalidTarget)
		}
		return nil, fmt.Errorf("transfer ticket: %w", err)
	}

	ticket, err := s.tickets.Transfer(ctx, in.TicketID, in.OrganizationID, in.TargetOrganizationID)
	if err != nil {
		return nil, fmt.Errorf("transfer ticket: %w", err)
	}
	if s.metrics != nil {
		s.metrics.TicketTransferred()
	}

	ev := s.log.Info().
		Int64("ticket_id", ticket.ID).
		Int64("from_org_id", in.OrganizationID).
		Int64("to_org_id", in.TargetOrganizationID)
	if in.Notes != nil {
		ev = ev.Str("notes", *in.Notes)
	}
	ev.Msg("ticket transferred")
	return ticket, nil
}

func (s *TicketService) RegisterExpense(ctx context.Context, in ports.RegisterExpenseInput) (*domain.Expense, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("register expense: %w: amount must be positive", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Concept) == "" {
		return nil, fmt.Errorf("register expense: %w: concept is required", domain.ErrInvalidInput)
	}
	category := domain.ExpenseOther
	if in.Category != "" {
		category = domain.ExpenseCategory(in.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("register expense: %w: unknown category %q", domain.ErrInvalidInput, in.Category)
		}
	}

	if _, err := s.projects.Get(ctx, in.ProjectID, in.OrganizationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("register expense: %w", domain.ErrInvalidProject)
		}
		return nil, fmt.Errorf("register expense: %w", err)
	}

	expense := &domain.Expense{
		ProjectID:   in.ProjectID,
		Amount:      in.Amount,
		Concept:     in.Concept,
		Category:    category,
		EvidenceURL: in.EvidenceURL,
		Date:        s.now().UTC(),
	}
	if err := s.finance.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("register expense: %w", err)
	}
	invalidateSummary(ctx, s.cache, s.log, in.OrganizationID)

	s.log.Info().Int64("expense_id", expense.ID).Int64("project_id", in.ProjectID).Str("amount", in.Amount.String()).Msg("expense registered")
	return expense, nil
}

// CoverageSuggestions lists the other organizations that cover a zone.
func (s *TicketService) CoverageSuggestions(ctx context.Context, zoneID, callerOrgID int64) ([]domain.Organization, error) {
	if _, err := s.zones.Get(ctx, zoneID); err != nil {
		return nil, fmt.Errorf("coverage suggestions: %w", err)
	}
	orgs, err := s.zones.CoveringOrganizations(ctx, zoneID)
	if err != nil {
		return nil, fmt.Errorf("coverage suggestions: %w", err)
	}
	out := make([]domain.Organization, 0, len(orgs))
	for _, o := range orgs {
		if o.ID != callerOrgID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *TicketService) Zones(ctx context.Context) ([]domain.Zone, error) {
	zones, err := s.zones.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return zones, nil
}

// invalidateSummary drops a cached financial summary. Failures are logged:
// the entry expires on its own TTL.
func invalidateSummary(ctx context.Context, cache ports.SummaryCache, log zerolog.Logger, orgID int64) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, orgID); err != nil {
		log.Warn().Err(err).Int64("org_id", orgID).Msg("failed to invalidate financial summary")
	}
}
