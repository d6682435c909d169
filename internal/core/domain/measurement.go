package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricCitizenSatisfaction is the measurement name read by the impact
// dashboard.
const MetricCitizenSatisfaction = "SATISFACCION"

// DataSource tells where a measurement came from.
type DataSource string

const (
	SourceSurvey   DataSource = "ENCUESTA"
	SourceApp      DataSource = "APP"
	SourceExternal DataSource = "EXTERNO"
	SourceManual   DataSource = "MANUAL"
)

// Measurement is an ad-hoc KPI sample.
type Measurement struct {
	ID             int64           `json:"id_medicion"`
	OrganizationID int64           `json:"id_organizacion_medicion"`
	Metric         string          `json:"tipo_metrica_medicion"`
	Value          decimal.Decimal `json:"valor_medicion"`
	Source         DataSource      `json:"fuente_dato_medicion"`
	Date           time.Time       `json:"fecha_registro_medicion"`
	Notes          *string         `json:"notas_medicion"`
}

// ImpactMetrics is the quick counter set of the impact dashboard.
type ImpactMetrics struct {
	ResolvedTickets     int64           `json:"tickets_resueltos"`
	ActiveTickets       int64           `json:"tickets_activos"`
	CitizenSatisfaction decimal.Decimal `json:"satisfaccion_ciudadana"`
}
