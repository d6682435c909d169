package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// ObjectiveStore implements ports.ObjectiveRepository.
type ObjectiveStore struct {
	pool *pgxpool.Pool
}

func NewObjectiveStore(pool *pgxpool.Pool) *ObjectiveStore {
	return &ObjectiveStore{pool: pool}
}

const objectiveColumns = `
	id_objetivo, id_organizacion_objetivo, titulo_objetivo, perspectiva_objetivo,
	kpi_nombre_objetivo, meta_valor_objetivo, avance_actual_objetivo,
	color_semaforo_objetivo, fecha_creacion_objetivo`

func scanObjective(row pgx.Row) (*domain.Objective, error) {
	var (
		o                      domain.Objective
		perspective, semaphore string
	)
	if err := row.Scan(
		&o.ID, &o.OrganizationID, &o.Title, &perspective, &o.KPIName,
		&o.Target, &o.Progress, &semaphore, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Perspective = domain.Perspective(perspective)
	o.Semaphore = domain.Semaphore(semaphore)
	return &o, nil
}

func (s *ObjectiveStore) ListByOrganization(ctx context.Context, orgID int64) ([]domain.Objective, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+objectiveColumns+`
		FROM objetivos WHERE id_organizacion_objetivo = $1 ORDER BY id_objetivo`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list objectives: %w", err)
	}
	defer rows.Close()

	out := []domain.Objective{}
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan objective: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (s *ObjectiveStore) Create(ctx context.Context, obj *domain.Objective) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO objetivos (
			id_organizacion_objetivo, titulo_objetivo, perspectiva_objetivo, kpi_nombre_objetivo,
			meta_valor_objetivo, avance_actual_objetivo, color_semaforo_objetivo
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_objetivo, fecha_creacion_objetivo
	`,
		obj.OrganizationID, obj.Title, string(obj.Perspective), obj.KPIName,
		obj.Target, obj.Progress, string(obj.Semaphore),
	).Scan(&obj.ID, &obj.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create objective: %w", mapPostgresError(err))
	}
	return nil
}

func (s *ObjectiveStore) Get(ctx context.Context, id, orgID int64) (*domain.Objective, error) {
	o, err := scanObjective(s.pool.QueryRow(ctx, `SELECT `+objectiveColumns+`
		FROM objetivos WHERE id_objetivo = $1 AND id_organizacion_objetivo = $2`, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get objective: %w", err)
	}
	return o, nil
}

func (s *ObjectiveStore) Update(ctx context.Context, obj *domain.Objective) error {
	result, err := s.pool.Exec(ctx, `
		UPDATE objetivos SET
			meta_valor_objetivo = $3,
			avance_actual_objetivo = $4,
			color_semaforo_objetivo = $5
		WHERE id_objetivo = $1 AND id_organizacion_objetivo = $2
	`, obj.ID, obj.OrganizationID, obj.Target, obj.Progress, string(obj.Semaphore))
	if err != nil {
		return fmt.Errorf("failed to update objective: %w", mapPostgresError(err))
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ProjectStore implements ports.ProjectRepository.
type ProjectStore struct {
	pool *pgxpool.Pool
}

func NewProjectStore(pool *pgxpool.Pool) *ProjectStore {
	return &ProjectStore{pool: pool}
}

const projectColumns = `
	id_proyecto, id_objetivo_proyecto, id_organizacion_proyecto, id_zona_proyecto,
	nombre_proyecto, presupuesto_proyecto, estado_proyecto, prioridad_proyecto,
	fecha_inicio_proyecto, fecha_fin_proyecto`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		p                domain.Project
		status, priority string
	)
	if err := row.Scan(
		&p.ID, &p.ObjectiveID, &p.OrganizationID, &p.ZoneID,
		&p.Name, &p.Budget, &status, &priority, &p.StartDate, &p.EndDate,
	); err != nil {
		return nil, err
	}
	p.Status = domain.ProjectStatus(status)
	p.Priority = domain.Priority(priority)
	return &p, nil
}

func (s *ProjectStore) ListByOrganization(ctx context.Context, orgID int64) ([]domain.Project, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+projectColumns+`
		FROM proyectos WHERE id_organizacion_proyecto = $1 ORDER BY id_proyecto`, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *ProjectStore) Create(ctx context.Context, p *domain.Project) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO proyectos (
			id_objetivo_proyecto, id_organizacion_proyecto, id_zona_proyecto, nombre_proyecto,
			presupuesto_proyecto, estado_proyecto, prioridad_proyecto,
			fecha_inicio_proyecto, fecha_fin_proyecto
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id_proyecto
	`,
		p.ObjectiveID, p.OrganizationID, p.ZoneID, p.Name,
		p.Budget, string(p.Status), string(p.Priority),
		p.StartDate, p.EndDate,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", mapPostgresError(err))
	}
	return nil
}

func (s *ProjectStore) Get(ctx context.Context, id, orgID int64) (*domain.Project, error) {
	p, err := scanProject(s.pool.QueryRow(ctx, `SELECT `+projectColumns+`
		FROM proyectos WHERE id_proyecto = $1 AND id_organizacion_proyecto = $2`, id, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// FinanceStore implements ports.FinanceRepository.
type FinanceStore struct {
	pool *pgxpool.Pool
}

func NewFinanceStore(pool *pgxpool.Pool) *FinanceStore {
	return &FinanceStore{pool: pool}
}

func (s *FinanceStore) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO transacciones (
			id_organizacion_transaccion, fuente_transaccion, monto_transaccion,
			tipo_transaccion, fecha_transaccion
		) VALUES ($1, $2, $3, $4, COALESCE($5, CURRENT_DATE))
		RETURNING id_transaccion, fecha_transaccion
	`, t.OrganizationID, t.Source, t.Amount, string(t.Type), nullTime(t.Date)).Scan(&t.ID, &t.Date)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", mapPostgresError(err))
	}
	return nil
}

func (s *FinanceStore) CreateExpense(ctx context.Context, e *domain.Expense) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO gastos (
			id_proyecto_gasto, monto_gasto, concepto_gasto, categoria_gasto,
			evidencia_url_gasto, fecha_gasto
		) VALUES ($1, $2, $3, $4, $5, COALESCE($6, CURRENT_DATE))
		RETURNING id_gasto, fecha_gasto
	`, e.ProjectID, e.Amount, e.Concept, string(e.Category), e.EvidenceURL, nullTime(e.Date)).Scan(&e.ID, &e.Date)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("failed to create expense: %w", domain.ErrInvalidProject)
		}
		return fmt.Errorf("failed to create expense: %w", mapPostgresError(err))
	}
	return nil
}

// Totals runs the three aggregates in one round trip. Expenses are joined
// through projects so only the organization's own spending counts.
func (s *FinanceStore) Totals(ctx context.Context, orgID int64) (domain.FinancialTotals, error) {
	var totals domain.FinancialTotals
	err := s.pool.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(monto_transaccion) FROM transacciones
			          WHERE id_organizacion_transaccion = $1), 0),
			COALESCE((SELECT SUM(presupuesto_proyecto) FROM proyectos
			          WHERE id_organizacion_proyecto = $1), 0),
			COALESCE((SELECT SUM(g.monto_gasto) FROM gastos g
			          JOIN proyectos p ON p.id_proyecto = g.id_proyecto_gasto
			          WHERE p.id_organizacion_proyecto = $1), 0)
	`, orgID).Scan(&totals.Wallet, &totals.Committed, &totals.Executed)
	if err != nil {
		return domain.FinancialTotals{}, fmt.Errorf("failed to compute financial totals: %w", err)
	}
	return totals, nil
}

// MeasurementStore implements ports.MeasurementRepository.
type MeasurementStore struct {
	pool *pgxpool.Pool
}

func NewMeasurementStore(pool *pgxpool.Pool) *MeasurementStore {
	return &MeasurementStore{pool: pool}
}

func (s *MeasurementStore) Latest(ctx context.Context, orgID int64, metric string) (*domain.Measurement, error) {
	var (
		m      domain.Measurement
		value  decimal.Decimal
		source string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id_medicion, id_organizacion_medicion, tipo_metrica_medicion, valor_medicion,
		       fuente_dato_medicion, fecha_registro_medicion, notas_medicion
		FROM mediciones
		WHERE id_organizacion_medicion = $1 AND tipo_metrica_medicion = $2
		ORDER BY fecha_registro_medicion DESC, id_medicion DESC
		LIMIT 1
	`, orgID, metric).Scan(&m.ID, &m.OrganizationID, &m.Metric, &value, &source, &m.Date, &m.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest measurement: %w", err)
	}
	m.Value = value
	m.Source = domain.DataSource(source)
	return &m, nil
}

// Record inserts a measurement. Feeds are loaded by operators, so only the
// integration tests and the bootstrap command call it.
func (s *MeasurementStore) Record(ctx context.Context, m *domain.Measurement) error {
	if m.Source == "" {
		m.Source = domain.SourceManual
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO mediciones (
			id_organizacion_medicion, tipo_metrica_medicion, valor_medicion,
			fuente_dato_medicion, fecha_registro_medicion, notas_medicion
		) VALUES ($1, $2, $3, $4, COALESCE($5, CURRENT_DATE), $6)
		RETURNING id_medicion, fecha_registro_medicion
	`, m.OrganizationID, m.Metric, m.Value, string(m.Source), nullTime(m.Date), m.Notes).Scan(&m.ID, &m.Date)
	if err != nil {
		return fmt.Errorf("failed to record measurement: %w", mapPostgresError(err))
	}
	return nil
}
