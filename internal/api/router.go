package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cuenca-resiliencia/erp-api/docs"
	"github.com/cuenca-resiliencia/erp-api/internal/api/handler"
	"github.com/cuenca-resiliencia/erp-api/internal/api/middleware"
	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

const uploadBodyLimit = "25M"

// Dependencies holds everything the HTTP layer needs. Registry and Gatherer
// are optional; without them /metrics is not served.
type Dependencies struct {
	Log       zerolog.Logger
	Guard     ports.AccessGuard
	Auth      ports.AuthService
	Tickets   ports.TicketService
	Scorecard ports.ScorecardService
	Media     ports.MediaService
	Chatbot   ports.ChatbotService
	Uploads   handler.UploadObserver
	Health    map[string]handler.Pinger
	Registry  prometheus.Registerer
	Gatherer  prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	if deps.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "erp",
			Registerer: deps.Registry,
		}))
	}

	// --- Ops (no auth required) ---
	health := handler.NewHealthHandler(deps.Health)
	e.GET("/", health.Root)
	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if deps.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	}

	authn := middleware.Auth(deps.Guard)
	can := func(op domain.Operation) echo.MiddlewareFunc {
		return middleware.RBAC(deps.Guard, op)
	}

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	authGroup := e.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register/admin", authHandler.RegisterUser, authn, can(domain.OpRegisterUser))

	// --- Dashboard ---
	dash := handler.NewDashboardHandler(deps.Scorecard)
	dashGroup := e.Group("/dashboard", authn)
	dashGroup.GET("/bsc/objetivos", dash.ListObjectives, can(domain.OpListObjectives))
	dashGroup.POST("/bsc/objetivos", dash.CreateObjective, can(domain.OpCreateObjective))
	dashGroup.PATCH("/bsc/objetivos/:id", dash.UpdateObjective, can(domain.OpUpdateObjective))
	dashGroup.GET("/finanzas/resumen", dash.FinancialSummary, can(domain.OpFinancialSummary))
	dashGroup.POST("/finanzas/transacciones", dash.CreateTransaction, can(domain.OpCreateTransaction))
	dashGroup.GET("/proyectos", dash.ListProjects, can(domain.OpListProjects))
	dashGroup.POST("/proyectos", dash.CreateProject, can(domain.OpCreateProject))
	dashGroup.GET("/impacto/metricas", dash.ImpactMetrics, can(domain.OpImpactMetrics))

	// --- Operations ---
	ops := handler.NewOperationsHandler(deps.Tickets)
	opsGroup := e.Group("/operations", authn)
	opsGroup.GET("/tickets/inbox", ops.Inbox, can(domain.OpInbox))
	opsGroup.GET("/tickets/:id", ops.Detail, can(domain.OpTicketDetail))
	opsGroup.PATCH("/tickets/:id/assign", ops.Assign, can(domain.OpAssignTicket))
	opsGroup.PATCH("/tickets/:id/transfer", ops.Transfer, can(domain.OpTransferTicket))
	opsGroup.POST("/gastos", ops.RegisterExpense, can(domain.OpRegisterExpense))
	opsGroup.GET("/cobertura/sugerencias/:zona_id", ops.CoverageSuggestions, can(domain.OpCoverageSuggestions))

	// --- Public ---
	public := handler.NewPublicHandler(deps.Tickets, deps.Media, deps.Chatbot, deps.Uploads)
	publicGroup := e.Group("/public")
	publicGroup.GET("/zonas", public.Zones)
	publicGroup.POST("/evidence/upload", public.UploadEvidence, echomiddleware.BodyLimit(uploadBodyLimit))
	publicGroup.GET("/evidence/:name", public.Evidence)
	publicGroup.POST("/tickets", public.CreateTicket)
	publicGroup.GET("/tickets/status/:uuid", public.TicketStatus)
	publicGroup.POST("/chatbot/ask", public.Ask)

	return e
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
