package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

// IdempotencyHeader lets a citizen app retry ticket submission safely.
const IdempotencyHeader = "Idempotency-Key"

// UploadObserver records evidence upload outcomes. Optional.
type UploadObserver interface {
	ObserveUpload(result string, elapsed time.Duration)
}

// PublicHandler serves the unauthenticated citizen surface.
type PublicHandler struct {
	tickets  ports.TicketService
	media    ports.MediaService
	chatbot  ports.ChatbotService
	observer UploadObserver
}

func NewPublicHandler(tickets ports.TicketService, media ports.MediaService, chatbot ports.ChatbotService, observer UploadObserver) *PublicHandler {
	return &PublicHandler{tickets: tickets, media: media, chatbot: chatbot, observer: observer}
}

// Zones
//
// @Summary      List municipal zones
// @Tags         public
// @Produce      json
// @Success      200  {array}  domain.Zone
// @Router       /public/zonas [get]
func (h *PublicHandler) Zones(c echo.Context) error {
	zones, err := h.tickets.Zones(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zones)
}

// UploadEvidence stores a photo or video and returns its URL, to be sent
// later in the evidencias field of a ticket.
//
// @Summary      Upload evidence
// @Tags         public
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "JPEG, PNG or MP4"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /public/evidence/upload [post]
func (h *PublicHandler) UploadEvidence(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer f.Close()

	start := time.Now()
	url, err := h.media.Upload(c.Request().Context(), ports.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	})
	h.observe(err, time.Since(start))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}

func (h *PublicHandler) observe(err error, elapsed time.Duration) {
	if h.observer == nil {
		return
	}
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrUnsupportedMedia):
		result = "rejected"
	case err != nil:
		result = "error"
	}
	h.observer.ObserveUpload(result, elapsed)
}

// Evidence streams a stored object back when the backend serves its own files.
//
// @Summary      Download evidence
// @Tags         public
// @Produce      octet-stream
// @Param        name  path  string  true  "Object name"
// @Success      200
// @Failure      404   {object}  errorResponse
// @Router       /public/evidence/{name} [get]
func (h *PublicHandler) Evidence(c echo.Context) error {
	rc, contentType, err := h.media.Open(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	defer rc.Close()
	return c.Stream(http.StatusOK, contentType, rc)
}

// CreateTicket files a citizen report into the general inbox. A repeated
// Idempotency-Key from the same reporter returns the original ticket.
//
// @Summary      Report an incident
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                     false  "Client retry key"
// @Param        body             body      createPublicTicketRequest  true   "Report"
// @Success      201              {object}  domain.Ticket
// @Failure      400              {object}  errorResponse
// @Router       /public/tickets [post]
func (h *PublicHandler) CreateTicket(c echo.Context) error {
	var req createPublicTicketRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ticket, err := h.tickets.CreatePublic(c.Request().Context(), ports.CreatePublicTicketInput{
		ReporterID:          req.ReporterID,
		Description:         req.Description,
		LocationDescription: req.LocationDescription,
		IncidentType:        req.IncidentType,
		ZoneID:              req.ZoneID,
		Latitude:            req.Latitude,
		Longitude:           req.Longitude,
		EvidenceURLs:        req.EvidenceURLs,
		IdempotencyKey:      strings.TrimSpace(c.Request().Header.Get(IdempotencyHeader)),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ticket)
}

// TicketStatus lists every ticket a citizen has filed.
//
// @Summary      Citizen ticket history
// @Tags         public
// @Produce      json
// @Param        uuid  path     string  true  "Reporter identifier"
// @Success      200   {array}  domain.Ticket
// @Router       /public/tickets/status/{uuid} [get]
func (h *PublicHandler) TicketStatus(c echo.Context) error {
	tickets, err := h.tickets.CitizenStatus(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// Ask
//
// @Summary      Ask the assistant
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body      chatbotRequest      true  "Question"
// @Success      200   {object}  ports.ChatbotReply
// @Router       /public/chatbot/ask [post]
func (h *PublicHandler) Ask(c echo.Context) error {
	var req chatbotRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.chatbot.Ask(c.Request().Context(), req.Message, req.ContextZoneID))
}
