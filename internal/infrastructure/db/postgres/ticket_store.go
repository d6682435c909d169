package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// TicketStore implements ports.TicketRepository.
type TicketStore struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewTicketStore(pool *pgxpool.Pool, log zerolog.Logger) *TicketStore {
	return &TicketStore{pool: pool, log: log}
}

const ticketColumns = `
	id_ticket, id_organizacion_ticket, id_proyecto_ticket, id_zona_ticket,
	id_usuario_reporte_ticket, descripcion_ticket, des_hechos_lugar_ticket,
	tipo_incidente_ticket, estado_ticket, prioridad_ticket,
	ubicacion_lat_ticket, ubicacion_lon_ticket, fecha_creacion_ticket, fecha_cierre_ticket`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var (
		t                          domain.Ticket
		incident, status, priority string
		lat, lon                   decimal.NullDecimal
	)
	if err := row.Scan(
		&t.ID, &t.OrganizationID, &t.ProjectID, &t.ZoneID,
		&t.ReporterID, &t.Description, &t.LocationDescription,
		&incident, &status, &priority,
		&lat, &lon, &t.CreatedAt, &t.ClosedAt,
	); err != nil {
		return nil, err
	}
	t.IncidentType = domain.IncidentType(incident)
	t.Status = domain.TicketStatus(status)
	t.Priority = domain.Priority(priority)
	if lat.Valid {
		t.Latitude = &lat.Decimal
	}
	if lon.Valid {
		t.Longitude = &lon.Decimal
	}
	return &t, nil
}

func collectTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	defer rows.Close()
	out := []domain.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Create inserts the ticket and its evidence in one transaction.
func (s *TicketStore) Create(ctx context.Context, t *domain.Ticket) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	err = tx.QueryRow(ctx, `
		INSERT INTO tickets (
			id_organizacion_ticket, id_proyecto_ticket, id_zona_ticket, id_usuario_reporte_ticket,
			descripcion_ticket, des_hechos_lugar_ticket, tipo_incidente_ticket, estado_ticket,
			prioridad_ticket, ubicacion_lat_ticket, ubicacion_lon_ticket, fecha_creacion_ticket
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, COALESCE($12, now()))
		RETURNING id_ticket, fecha_creacion_ticket
	`,
		t.OrganizationID, t.ProjectID, t.ZoneID, t.ReporterID,
		t.Description, t.LocationDescription, string(t.IncidentType), string(t.Status),
		string(t.Priority), t.Latitude, t.Longitude, nullTime(t.CreatedAt),
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) && t.ZoneID != nil {
			return fmt.Errorf("failed to create ticket: %w", domain.ErrInvalidZone)
		}
		return fmt.Errorf("failed to create ticket: %w", mapPostgresError(err))
	}

	for i := range t.Evidence {
		e := &t.Evidence[i]
		e.TicketID = t.ID
		if e.FileType == "" {
			e.FileType = domain.FileImage
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO evidencias (id_ticket_evidencia, url_evidencia, tipo_archivo_evidencia, fecha_carga_evidencia)
			VALUES ($1, $2, $3, COALESCE($4, now()))
			RETURNING id_evidencia, fecha_carga_evidencia
		`, e.TicketID, e.URL, string(e.FileType), nullTime(e.UploadedAt)).Scan(&e.ID, &e.UploadedAt)
		if err != nil {
			return fmt.Errorf("failed to attach evidence: %w", mapPostgresError(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ticket: %w", err)
	}
	s.log.Debug().Int64("ticket_id", t.ID).Int("evidence", len(t.Evidence)).Msg("ticket inserted")
	return nil
}

func (s *TicketStore) List(ctx context.Context, f ports.TicketFilter) ([]domain.Ticket, error) {
	var (
		where = []string{"id_organizacion_ticket = $1"}
		args  = []any{f.OrganizationID}
	)
	if f.Status != nil {
		args = append(args, string(*f.Status))
		where = append(where, fmt.Sprintf("estado_ticket = $%d", len(args)))
	}
	if f.ZoneID != nil {
		args = append(args, *f.ZoneID)
		where = append(where, fmt.Sprintf("id_zona_ticket = $%d", len(args)))
	}

	rows, err := s.pool.Query(ctx, `SELECT `+ticketColumns+` FROM tickets
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY fecha_creacion_ticket DESC, id_ticket DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return collectTickets(rows)
}

func (s *TicketStore) Get(ctx context.Context, id, orgID int64) (*domain.Ticket, error) {
	t, err := scanTicket(s.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets
		WHERE id_ticket = $1 AND id_organizacion_ticket = $2`, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if t.Evidence, err = s.evidence(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketStore) evidence(ctx context.Context, ticketID int64) ([]domain.Evidence, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id_evidencia, id_ticket_evidencia, url_evidencia, tipo_archivo_evidencia, fecha_carga_evidencia
		FROM evidencias WHERE id_ticket_evidencia = $1 ORDER BY id_evidencia
	`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	defer rows.Close()

	var out []domain.Evidence
	for rows.Next() {
		var (
			e    domain.Evidence
			kind string
		)
		if err := rows.Scan(&e.ID, &e.TicketID, &e.URL, &kind, &e.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evidence: %w", err)
		}
		e.FileType = domain.FileType(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *TicketStore) Update(ctx context.Context, t *domain.Ticket) error {
	result, err := s.pool.Exec(ctx, `
		UPDATE tickets SET
			id_proyecto_ticket = $3,
			estado_ticket = $4,
			prioridad_ticket = $5,
			fecha_cierre_ticket = $6
		WHERE id_ticket = $1 AND id_organizacion_ticket = $2
	`, t.ID, t.OrganizationID, t.ProjectID, string(t.Status), string(t.Priority), t.ClosedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("failed to update ticket: %w", domain.ErrInvalidProject)
		}
		return fmt.Errorf("failed to update ticket: %w", mapPostgresError(err))
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Transfer is a single conditional UPDATE, so a concurrent transfer of the
// same ticket from the same owner moves it at most once.
func (s *TicketStore) Transfer(ctx context.Context, id, fromOrg, toOrg int64) (*domain.Ticket, error) {
	t, err := scanTicket(s.pool.QueryRow(ctx, `
		UPDATE tickets SET
			id_organizacion_ticket = $3,
			id_proyecto_ticket = NULL,
			estado_ticket = 'RECIBIDO',
			fecha_cierre_ticket = NULL
		WHERE id_ticket = $1 AND id_organizacion_ticket = $2
		RETURNING `+ticketColumns, id, fromOrg, toOrg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("failed to transfer ticket: %w", domain.ErrInvalidTarget)
		}
		return nil, fmt.Errorf("failed to transfer ticket: %w", mapPostgresError(err))
	}
	if t.Evidence, err = s.evidence(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketStore) ListByReporter(ctx context.Context, reporterID string) ([]domain.Ticket, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+ticketColumns+` FROM tickets
		WHERE id_usuario_reporte_ticket = $1
		ORDER BY fecha_creacion_ticket DESC, id_ticket DESC`, reporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reporter tickets: %w", err)
	}
	return collectTickets(rows)
}

func (s *TicketStore) CountByState(ctx context.Context, orgID int64) (resolved, active int64, err error) {
	err = s.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE estado_ticket = 'RESUELTO'),
			COUNT(*) FILTER (WHERE estado_ticket NOT IN ('RESUELTO', 'CERRADO'))
		FROM tickets
		WHERE id_organizacion_ticket = $1
	`, orgID).Scan(&resolved, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return resolved, active, nil
}
