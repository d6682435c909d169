package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// DashboardHandler serves the strategy dashboard: objectives, finances,
// projects and impact counters, always scoped to the caller's organization.
type DashboardHandler struct {
	scorecard ports.ScorecardService
}

func NewDashboardHandler(scorecard ports.ScorecardService) *DashboardHandler {
	return &DashboardHandler{scorecard: scorecard}
}

// ListObjectives
//
// @Summary      List BSC objectives
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Objective
// @Failure      401  {object}  errorResponse
// @Router       /dashboard/bsc/objetivos [get]
func (h *DashboardHandler) ListObjectives(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	objectives, err := h.scorecard.ListObjectives(c.Request().Context(), user.OrganizationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, objectives)
}

// CreateObjective stores an objective; its semaphore is derived server-side.
//
// @Summary      Create a BSC objective
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createObjectiveRequest  true  "Objective"
// @Success      201   {object}  domain.Objective
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /dashboard/bsc/objetivos [post]
func (h *DashboardHandler) CreateObjective(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	var req createObjectiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	obj, err := h.scorecard.CreateObjective(c.Request().Context(), ports.CreateObjectiveInput{
		OrganizationID: user.OrganizationID,
		Title:          req.Title,
		Perspective:    req.Perspective,
		KPIName:        req.KPIName,
		Target:         req.Target,
		Progress:       req.Progress,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, obj)
}

// UpdateObjective patches progress and/or target and recomputes the semaphore.
//
// @Summary      Update a BSC objective
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Objective ID"
// @Param        body  body      updateObjectiveRequest  true  "Changes"
// @Success      200   {object}  domain.Objective
// @Failure      404   {object}  errorResponse
// @Router       /dashboard/bsc/objetivos/{id} [patch]
func (h *DashboardHandler) UpdateObjective(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateObjectiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	obj, err := h.scorecard.UpdateObjective(c.Request().Context(), ports.UpdateObjectiveInput{
		ObjectiveID:    id,
		OrganizationID: user.OrganizationID,
		Target:         req.Target,
		Progress:       req.Progress,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, obj)
}

// FinancialSummary
//
// @Summary      Financial summary of the organization
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.FinancialSummary
// @Failure      403  {object}  errorResponse
// @Router       /dashboard/finanzas/resumen [get]
func (h *DashboardHandler) FinancialSummary(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	summary, err := h.scorecard.FinancialSummary(c.Request().Context(), user.OrganizationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// CreateTransaction injects funds into the caller's organization. Any
// organization id in the body is ignored.
//
// @Summary      Register a funding transaction
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTransactionRequest  true  "Transaction"
// @Success      201   {object}  transactionCreatedResponse
// @Failure      400   {object}  errorResponse
// @Router       /dashboard/finanzas/transacciones [post]
func (h *DashboardHandler) CreateTransaction(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	var req createTransactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tx, err := h.scorecard.CreateTransaction(c.Request().Context(), ports.CreateTransactionInput{
		OrganizationID: user.OrganizationID,
		Source:         req.Source,
		Amount:         *req.Amount,
		Type:           req.Type,
		Date:           req.Date.ptr(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transactionCreatedResponse{
		Message:       "Transacción registrada exitosamente",
		TransactionID: tx.ID,
	})
}

// ListProjects
//
// @Summary      List projects
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Project
// @Router       /dashboard/proyectos [get]
func (h *DashboardHandler) ListProjects(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	projects, err := h.scorecard.ListProjects(c.Request().Context(), user.OrganizationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// CreateProject links a new project to one of the caller's objectives.
//
// @Summary      Create a project
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  errorResponse
// @Router       /dashboard/proyectos [post]
func (h *DashboardHandler) CreateProject(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	var req createProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	budget := decimal.Zero
	if req.Budget != nil {
		budget = *req.Budget
	}
	project, err := h.scorecard.CreateProject(c.Request().Context(), ports.CreateProjectInput{
		OrganizationID: user.OrganizationID,
		ObjectiveID:    req.ObjectiveID,
		ZoneID:         req.ZoneID,
		Name:           req.Name,
		Budget:         budget,
		Status:         req.Status,
		Priority:       req.Priority,
		StartDate:      req.StartDate.ptr(),
		EndDate:        req.EndDate.ptr(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// ImpactMetrics
//
// @Summary      Impact counters
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ImpactMetrics
// @Router       /dashboard/impacto/metricas [get]
func (h *DashboardHandler) ImpactMetrics(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	metrics, err := h.scorecard.ImpactMetrics(c.Request().Context(), user.OrganizationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metrics)
}
