package domain

import (
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TicketStatus represents the lifecycle state of a ticket.
//
//	RECIBIDO → ASIGNADO → EN_PROCESO → RESUELTO → CERRADO
//
// Only Transfer moves a ticket back to RECIBIDO explicitly. The generic
// update path accepts any valid status.
type TicketStatus string

const (
	TicketReceived   TicketStatus = "RECIBIDO"
	TicketAssigned   TicketStatus = "ASIGNADO"
	TicketInProgress TicketStatus = "EN_PROCESO"
	TicketResolved   TicketStatus = "RESUELTO"
	TicketClosed     TicketStatus = "CERRADO"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketReceived, TicketAssigned, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// Active reports whether the ticket still needs work.
func (s TicketStatus) Active() bool {
	return s != TicketResolved && s != TicketClosed
}

// IncidentType is the kind of environmental incident reported.
type IncidentType string

const (
	IncidentGarbage    IncidentType = "BASURA"
	IncidentLeak       IncidentType = "FUGA"
	IncidentOdor       IncidentType = "OLOR"
	IncidentChemical   IncidentType = "QUIMICO"
	IncidentWastewater IncidentType = "DESECHOS_RESIDUALES"
	IncidentIllegalLog IncidentType = "TALA_IRREGULAR"
	IncidentForestFire IncidentType = "INCENDIOS_FORESTALES"
	IncidentOther      IncidentType = "OTRO"
)

func (t IncidentType) Valid() bool {
	switch t {
	case IncidentGarbage, IncidentLeak, IncidentOdor, IncidentChemical,
		IncidentWastewater, IncidentIllegalLog, IncidentForestFire, IncidentOther:
		return true
	}
	return false
}

// Ticket is a citizen-filed incident report and the unit of operational work.
type Ticket struct {
	ID                  int64            `json:"id_ticket"`
	OrganizationID      int64            `json:"id_organizacion_ticket"`
	ProjectID           *int64           `json:"id_proyecto_ticket"`
	ZoneID              *int64           `json:"id_zona_ticket"`
	ReporterID          string           `json:"-"`
	Description         *string          `json:"descripcion_ticket"`
	LocationDescription *string          `json:"des_hechos_lugar_ticket"`
	IncidentType        IncidentType     `json:"tipo_incidente_ticket"`
	Status              TicketStatus     `json:"estado_ticket"`
	Priority            Priority         `json:"prioridad_ticket"`
	Latitude            *decimal.Decimal `json:"ubicacion_lat_ticket"`
	Longitude           *decimal.Decimal `json:"ubicacion_lon_ticket"`
	CreatedAt           time.Time        `json:"fecha_creacion_ticket"`
	ClosedAt            *time.Time       `json:"fecha_cierre_ticket"`
	Evidence            []Evidence       `json:"evidencias,omitempty"`
}

// SetStatus changes the status and keeps the closure timestamp consistent:
// stamped when the ticket becomes CERRADO, cleared otherwise.
func (t *Ticket) SetStatus(s TicketStatus, now time.Time) {
	t.Status = s
	if s == TicketClosed {
		if t.ClosedAt == nil {
			ts := now.UTC()
			t.ClosedAt = &ts
		}
		return
	}
	t.ClosedAt = nil
}

// FileType is the media kind of a piece of evidence.
type FileType string

const (
	FileImage    FileType = "IMAGEN"
	FileVideo    FileType = "VIDEO"
	FileDocument FileType = "DOCUMENTO"
)

// FileTypeFromName infers the evidence kind from a URL or file name
// extension. Unknown extensions are documents.
func FileTypeFromName(name string) FileType {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return FileImage
	case ".mp4", ".mov", ".webm":
		return FileVideo
	default:
		return FileDocument
	}
}

// Evidence is a media file attached to a ticket.
type Evidence struct {
	ID         int64     `json:"id_evidencia"`
	TicketID   int64     `json:"id_ticket_evidencia"`
	URL        string    `json:"url_evidencia"`
	FileType   FileType  `json:"tipo_archivo_evidencia"`
	UploadedAt time.Time `json:"fecha_carga_evidencia"`
}
