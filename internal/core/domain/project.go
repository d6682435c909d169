package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the execution state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "PLANEACION"
	ProjectActive    ProjectStatus = "ACTIVO"
	ProjectFinished  ProjectStatus = "FINALIZADO"
	ProjectSuspended ProjectStatus = "SUSPENDIDO"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectFinished, ProjectSuspended:
		return true
	}
	return false
}

// Priority is shared by projects and tickets.
type Priority string

const (
	PriorityLow      Priority = "BAJA"
	PriorityMedium   Priority = "MEDIA"
	PriorityHigh     Priority = "ALTA"
	PriorityCritical Priority = "CRITICA"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Project is an operational effort that pursues an objective of the same
// organization.
type Project struct {
	ID             int64           `json:"id_proyecto"`
	ObjectiveID    int64           `json:"id_objetivo_proyecto"`
	OrganizationID int64           `json:"id_organizacion_proyecto"`
	ZoneID         *int64          `json:"id_zona_proyecto"`
	Name           string          `json:"nombre_proyecto"`
	Budget         decimal.Decimal `json:"presupuesto_proyecto"`
	Status         ProjectStatus   `json:"estado_proyecto"`
	Priority       Priority        `json:"prioridad_proyecto"`
	StartDate      *time.Time      `json:"fecha_inicio_proyecto"`
	EndDate        *time.Time      `json:"fecha_fin_proyecto"`
}
