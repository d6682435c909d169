package handler

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// errorResponse is the error envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// civilDate accepts either a calendar date (2006-01-02) or an RFC 3339
// timestamp.
type civilDate struct {
	time.Time
}

func (d *civilDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return err
		}
	}
	d.Time = t
	return nil
}

func (d *civilDate) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// --- Auth ---

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerUserRequest struct {
	OrganizationID int64  `json:"id_organizacion_usuario" validate:"required,gt=0"`
	FullName       string `json:"nombre_completo_usuario" validate:"required,max=100"`
	Email          string `json:"correo_usuario"          validate:"required,max=100,email"`
	Password       string `json:"contraseña_usuario"      validate:"required,min=6"`
	Role           string `json:"rol_usuario"             validate:"omitempty,oneof=GOBERNANZA SUBGERENTE GRUPO_SOCIAL AUDITOR OPERADOR"`
}

// --- Dashboard ---

type createObjectiveRequest struct {
	Title       string          `json:"titulo_objetivo"        validate:"required,max=150"`
	Perspective string          `json:"perspectiva_objetivo"   validate:"required,oneof=FINANCIERA CLIENTES PROCESOS APRENDIZAJE"`
	KPIName     *string         `json:"kpi_nombre_objetivo"    validate:"omitempty,max=100"`
	Target      decimal.Decimal `json:"meta_valor_objetivo"    validate:"gte=0"`
	Progress    decimal.Decimal `json:"avance_actual_objetivo" validate:"gte=0"`
}

// updateObjectiveRequest ignores any client-sent semaphore.
type updateObjectiveRequest struct {
	Progress *decimal.Decimal `json:"avance_actual_objetivo" validate:"omitempty,gte=0"`
	Target   *decimal.Decimal `json:"meta_valor_objetivo"    validate:"omitempty,gte=0"`
}

type createTransactionRequest struct {
	Source *string          `json:"fuente_transaccion" validate:"omitempty,max=100"`
	Amount *decimal.Decimal `json:"monto_transaccion" validate:"required"`
	Type   string           `json:"tipo_transaccion"  validate:"required,oneof=PUBLICO PRIVADO PROPIO"`
	Date   *civilDate       `json:"fecha_transaccion"`
}

type transactionCreatedResponse struct {
	Message       string `json:"message"`
	TransactionID int64  `json:"id_transaccion"`
}

type createProjectRequest struct {
	ObjectiveID int64            `json:"id_objetivo_proyecto"  validate:"required,gt=0"`
	ZoneID      *int64           `json:"id_zona_proyecto"`
	Name        string           `json:"nombre_proyecto"       validate:"required,max=150"`
	Budget      *decimal.Decimal `json:"presupuesto_proyecto"  validate:"omitempty,gte=0"`
	Status      string           `json:"estado_proyecto"       validate:"omitempty,oneof=PLANEACION ACTIVO FINALIZADO SUSPENDIDO"`
	Priority    string           `json:"prioridad_proyecto"    validate:"omitempty,oneof=BAJA MEDIA ALTA CRITICA"`
	StartDate   *civilDate       `json:"fecha_inicio_proyecto"`
	EndDate     *civilDate       `json:"fecha_fin_proyecto"`
}

// --- Operations ---

type assignTicketRequest struct {
	ProjectID *int64  `json:"id_proyecto_ticket"`
	Priority  *string `json:"prioridad_ticket" validate:"omitempty,oneof=BAJA MEDIA ALTA CRITICA"`
	Status    *string `json:"estado_ticket"    validate:"omitempty,oneof=RECIBIDO ASIGNADO EN_PROCESO RESUELTO CERRADO"`
}

type transferTicketRequest struct {
	TargetOrganizationID int64   `json:"nuevo_id_organizacion" validate:"required,gt=0"`
	Notes                *string `json:"notas"`
}

type registerExpenseRequest struct {
	ProjectID   int64            `json:"id_proyecto_gasto"   validate:"required,gt=0"`
	Amount      *decimal.Decimal `json:"monto_gasto"         validate:"required,gt=0"`
	Concept     string           `json:"concepto_gasto"      validate:"required,max=200"`
	Category    string           `json:"categoria_gasto"     validate:"required,oneof=MATERIALES LOGISTICA STAFF TECNOLOGIA ELECTRICIDAD SUELDOS AGUA OTROS"`
	EvidenceURL *string          `json:"evidencia_url_gasto" validate:"omitempty,max=255"`
}

type expenseCreatedResponse struct {
	Message   string `json:"message"`
	ExpenseID int64  `json:"id_gasto"`
}

type coverageSuggestion struct {
	OrganizationID int64                   `json:"id_organizacion"`
	Name           string                  `json:"nombre"`
	Type           domain.OrganizationType `json:"tipo"`
}

// --- Public ---

type createPublicTicketRequest struct {
	ReporterID          string           `json:"id_usuario_reporte_ticket" validate:"required,max=100"`
	Description         *string          `json:"descripcion_ticket"`
	LocationDescription *string          `json:"des_hechos_lugar_ticket"`
	IncidentType        string           `json:"tipo_incidente_ticket"     validate:"required,oneof=BASURA FUGA OLOR QUIMICO DESECHOS_RESIDUALES TALA_IRREGULAR INCENDIOS_FORESTALES OTRO"`
	ZoneID              int64            `json:"id_zona_ticket"            validate:"required,gt=0"`
	Latitude            *decimal.Decimal `json:"ubicacion_lat_ticket"`
	Longitude           *decimal.Decimal `json:"ubicacion_lon_ticket"`
	EvidenceURLs        []string         `json:"evidencias"                validate:"omitempty,max=10,dive,required,max=255,url"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

type chatbotRequest struct {
	Message       string `json:"message"         validate:"required"`
	ContextZoneID *int64 `json:"context_zone_id"`
}
