package domain

import "time"

// GeneralInboxOrganizationID owns every ticket filed through the public
// surface until someone transfers it.
const GeneralInboxOrganizationID int64 = 1

// OrganizationType classifies an organization.
type OrganizationType string

const (
	OrganizationNGO        OrganizationType = "ONG"
	OrganizationGovernment OrganizationType = "GOBIERNO"
	OrganizationUniversity OrganizationType = "UNIVERSIDAD"
	OrganizationCompany    OrganizationType = "EMPRESA"
)

func (t OrganizationType) Valid() bool {
	switch t {
	case OrganizationNGO, OrganizationGovernment, OrganizationUniversity, OrganizationCompany:
		return true
	}
	return false
}

// Organization is the tenant: the unit of data isolation.
type Organization struct {
	ID        int64            `json:"id_organizacion"`
	Name      string           `json:"nombre_organizacion"`
	Type      OrganizationType `json:"tipo_organizacion"`
	CreatedAt time.Time        `json:"fecha_creacion_organizacion"`
}

// Zone is a municipal area. Organizations declare the zones they cover
// through a pure many-to-many association.
type Zone struct {
	ID     int64  `json:"id_zona"`
	Name   string `json:"nombre_zona"`
	Status string `json:"estado_zona"`
}
