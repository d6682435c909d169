package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// OperationsHandler serves the organization's ticket inbox and field
// operations.
type OperationsHandler struct {
	tickets ports.TicketService
}

func NewOperationsHandler(tickets ports.TicketService) *OperationsHandler {
	return &OperationsHandler{tickets: tickets}
}

// Inbox lists the caller organization's tickets, newest first.
//
// @Summary      Ticket inbox
// @Tags         operations
// @Produce      json
// @Security     BearerAuth
// @Param        estado   query     string  false  "Ticket status filter"
// @Param        zona_id  query     int     false  "Zone filter"
// @Success      200      {array}   domain.Ticket
// @Failure      400      {object}  errorResponse
// @Router       /operations/tickets/inbox [get]
func (h *OperationsHandler) Inbox(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	zoneID, err := optionalQueryID(c, "zona_id")
	if err != nil {
		return err
	}

	tickets, err := h.tickets.Inbox(c.Request().Context(), ports.InboxInput{
		OrganizationID: user.OrganizationID,
		Status:         c.QueryParam("estado"),
		ZoneID:         zoneID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// Detail
//
// @Summary      Ticket detail
// @Tags         operations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ticket ID"
// @Success      200  {object}  domain.Ticket
// @Failure      404  {object}  errorResponse
// @Router       /operations/tickets/{id} [get]
func (h *OperationsHandler) Detail(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.tickets.Detail(c.Request().Context(), id, user.OrganizationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// Assign links a ticket to a project and/or updates its priority and status.
// Linking a project without an explicit status moves the ticket to ASIGNADO.
//
// @Summary      Assign a ticket
// @Tags         operations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Ticket ID"
// @Param        body  body      assignTicketRequest  true  "Changes"
// @Success      200   {object}  domain.Ticket
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /operations/tickets/{id}/assign [patch]
func (h *OperationsHandler) Assign(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req assignTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ticket, err := h.tickets.AssignToProject(c.Request().Context(), ports.AssignTicketInput{
		TicketID:       id,
		OrganizationID: user.OrganizationID,
		ProjectID:      req.ProjectID,
		Priority:       req.Priority,
		Status:         req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// Transfer hands a ticket over to another organization.
//
// @Summary      Transfer a ticket
// @Tags         operations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Ticket ID"
// @Param        body  body      transferTicketRequest  true  "Target organization"
// @Success      200   {object}  domain.Ticket
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /operations/tickets/{id}/transfer [patch]
func (h *OperationsHandler) Transfer(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req transferTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ticket, err := h.tickets.Transfer(c.Request().Context(), ports.TransferTicketInput{
		TicketID:             id,
		OrganizationID:       user.OrganizationID,
		TargetOrganizationID: req.TargetOrganizationID,
		Notes:                req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// RegisterExpense
//
// @Summary      Register a project expense
// @Tags         operations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerExpenseRequest  true  "Expense"
// @Success      201   {object}  expenseCreatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /operations/gastos [post]
func (h *OperationsHandler) RegisterExpense(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	var req registerExpenseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	expense, err := h.tickets.RegisterExpense(c.Request().Context(), ports.RegisterExpenseInput{
		ProjectID:      req.ProjectID,
		OrganizationID: user.OrganizationID,
		Amount:         *req.Amount,
		Concept:        req.Concept,
		Category:       req.Category,
		EvidenceURL:    req.EvidenceURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, expenseCreatedResponse{
		Message:   "Gasto registrado correctamente",
		ExpenseID: expense.ID,
	})
}

// CoverageSuggestions lists the other organizations covering a zone.
//
// @Summary      Transfer targets for a zone
// @Tags         operations
// @Produce      json
// @Security     BearerAuth
// @Param        zona_id  path      int  true  "Zone ID"
// @Success      200      {array}   coverageSuggestion
// @Failure      404      {object}  errorResponse
// @Router       /operations/cobertura/sugerencias/{zona_id} [get]
func (h *OperationsHandler) CoverageSuggestions(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	zoneID, err := pathID(c, "zona_id")
	if err != nil {
		return err
	}

	orgs, err := h.tickets.CoverageSuggestions(c.Request().Context(), zoneID, user.OrganizationID)
	if err != nil {
		return err
	}
	out := make([]coverageSuggestion, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, coverageSuggestion{OrganizationID: o.ID, Name: o.Name, Type: o.Type})
	}
	return c.JSON(http.StatusOK, out)
}
