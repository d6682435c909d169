package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cuenca-resiliencia/erp-api/internal/core/ports"
)

const (
	replyReport     = "Para realizar un reporte, ve a la sección 'Nuevo Reporte', toma una foto y selecciona tu municipio. ¡Es muy rápido!"
	replyZoneFormat = "Actualmente en %s estamos enfocados en la limpieza de canales. ¿Viste algo irregular?"
	replyBasin      = "Trabajamos en toda la Cuenca Lerma-Chapala. ¿Desde qué municipio nos escribes?"
	replyStatus     = "Puedes consultar el avance de tus denuncias en la pestaña 'Mis Reportes' usando el código de tu dispositivo."
	replyGreeting   = "Hola, soy el asistente virtual de la Cuenca. Puedo ayudarte a reportar fugas, basura o consultar el estado de tus denuncias."
	defaultZoneName = "tu zona"
)

// ChatbotService answers citizens with fixed keyword rules, checked in
// order.
type ChatbotService struct {
	zones ports.ZoneRepository
	log   zerolog.Logger
}

func NewChatbotService(zones ports.ZoneRepository, log zerolog.Logger) *ChatbotService {
	return &ChatbotService{zones: zones, log: log}
}

func (s *ChatbotService) Ask(ctx context.Context, message string, contextZoneID *int64) ports.ChatbotReply {
	msg := strings.ToLower(message)

	switch {
	case strings.Contains(msg, "reportar") || strings.Contains(msg, "denuncia"):
		return ports.ChatbotReply{Response: replyReport, SuggestedActions: []string{"Crear Reporte"}}

	case strings.Contains(msg, "zona") || strings.Contains(msg, "municipio"):
		if contextZoneID != nil && *contextZoneID != 0 {
			name := defaultZoneName
			if z, err := s.zones.Get(ctx, *contextZoneID); err == nil {
				name = z.Name
			} else {
				s.log.Debug().Err(err).Int64("zone_id", *contextZoneID).Msg("chatbot zone lookup failed")
			}
			return ports.ChatbotReply{Response: fmt.Sprintf(replyZoneFormat, name), SuggestedActions: []string{}}
		}
		return ports.ChatbotReply{Response: replyBasin, SuggestedActions: []string{"Ver Mapa de Zonas"}}

	case strings.Contains(msg, "estatus") || strings.Contains(msg, "mi reporte"):
		return ports.ChatbotReply{Response: replyStatus, SuggestedActions: []string{"Ver Mis Reportes"}}
	}

	return ports.ChatbotReply{
		Response:         replyGreeting,
		SuggestedActions: []string{"¿Cómo reportar?", "¿Qué zonas cubren?"},
	}
}
