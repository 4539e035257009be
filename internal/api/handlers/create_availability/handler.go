package create_availability

import (
	"errors"
	"net/http"

	"github.com/orienta-vg/consultation-service/internal/api/handlers"
	"github.com/orienta-vg/consultation-service/internal/api/middleware"
	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/internal/service/availability"
)

const (
	msgInvalidRequestBody = "cuerpo de solicitud inválido"
	msgInvalidTime        = "formato de hora inválido, se espera HH:MM"
	msgInvalidDay         = "día de la semana inválido, se espera 0 (domingo) a 6 (sábado)"
	msgInvalidRange       = "la hora de inicio debe ser anterior a la hora de fin"
	msgOverlap            = "el horario se superpone con otro horario existente"
	msgNotPsychologist    = "solo los psicólogos pueden administrar su disponibilidad"
	msgPsychNotFound      = "psicólogo no encontrado"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	if role != domain.RolePsychologist {
		h.logger.Warn("POST /availability - Role %s cannot manage availability: user_id=%s", role, userID)
		handlers.RespondForbidden(w, msgNotPsychologist)
		return
	}

	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDay):
			h.logger.Warn("POST /availability - Invalid day: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, availability.ErrInvalidTimeRange):
			h.logger.Warn("POST /availability - Invalid time range: user_id=%s", userID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, availability.ErrWindowOverlap):
			h.logger.Warn("POST /availability - Window overlap: user_id=%s", userID)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, availability.ErrPsychologistNotFound):
			h.logger.Warn("POST /availability - Psychologist not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgPsychNotFound)

		default:
			h.logger.Error("POST /availability - Failed to create window: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Window created successfully: window_id=%s, user_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
