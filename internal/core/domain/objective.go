package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Perspective is one of the four Balanced Scorecard perspectives.
type Perspective string

const (
	PerspectiveFinancial Perspective = "FINANCIERA"
	PerspectiveCustomer  Perspective = "CLIENTES"
	PerspectiveProcess   Perspective = "PROCESOS"
	PerspectiveLearning  Perspective = "APRENDIZAJE"
)

func (p Perspective) Valid() bool {
	switch p {
	case PerspectiveFinancial, PerspectiveCustomer, PerspectiveProcess, PerspectiveLearning:
		return true
	}
	return false
}

// Semaphore is the traffic-light summary of an objective.
type Semaphore string

const (
	SemaphoreRed    Semaphore = "ROJO"
	SemaphoreYellow Semaphore = "AMARILLO"
	SemaphoreGreen  Semaphore = "VERDE"
)

var (
	hundred         = decimal.NewFromInt(100)
	yellowThreshold = decimal.NewFromInt(40)
	greenThreshold  = decimal.NewFromInt(80)
)

// DeriveSemaphore maps a progress/target ratio to a color. A zero target can
// never be reached and is Red rather than an error. Percentages above 100
// are allowed.
func DeriveSemaphore(progress, target decimal.Decimal) Semaphore {
	if target.IsZero() {
		return SemaphoreRed
	}
	pct := progress.Mul(hundred).Div(target)
	switch {
	case pct.LessThan(yellowThreshold):
		return SemaphoreRed
	case pct.LessThan(greenThreshold):
		return SemaphoreYellow
	default:
		return SemaphoreGreen
	}
}

// Objective is a strategic BSC objective owned by an organization.
type Objective struct {
	ID             int64           `json:"id_objetivo"`
	OrganizationID int64           `json:"id_organizacion_objetivo"`
	Title          string          `json:"titulo_objetivo"`
	Perspective    Perspective     `json:"perspectiva_objetivo"`
	KPIName        *string         `json:"kpi_nombre_objetivo"`
	Target         decimal.Decimal `json:"meta_valor_objetivo"`
	Progress       decimal.Decimal `json:"avance_actual_objetivo"`
	Semaphore      Semaphore       `json:"color_semaforo_objetivo"`
	CreatedAt      time.Time       `json:"fecha_creacion_objetivo"`
}

// Recompute refreshes the semaphore from the current progress and target.
// Every mutation of either value must be followed by a call to Recompute.
func (o *Objective) Recompute() {
	o.Semaphore = DeriveSemaphore(o.Progress, o.Target)
}
