package update_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orienta-vg/consultation-service/internal/api/handlers"
	"github.com/orienta-vg/consultation-service/internal/api/middleware"
	"github.com/orienta-vg/consultation-service/internal/domain"
	"github.com/orienta-vg/consultation-service/internal/service/availability"
)

const (
	msgInvalidRequestBody = "cuerpo de solicitud inválido"
	msgInvalidTime        = "formato de hora inválido, se espera HH:MM"
	msgInvalidRange       = "la hora de inicio debe ser anterior a la hora de fin"
	msgOverlap            = "el horario se superpone con otro horario existente"
	msgNotFound           = "horario de disponibilidad no encontrado"
	msgNotPsychologist    = "solo los psicólogos pueden administrar su disponibilidad"
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

// Handle PATCH /api/v1/availability/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	windowID := mux.Vars(r)["windowId"]

	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	if role != domain.RolePsychologist {
		h.logger.Warn("PATCH /availability/{id} - Role %s cannot manage availability: user_id=%s", role, userID)
		handlers.RespondForbidden(w, msgNotPsychologist)
		return
	}

	var req UpdateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /availability/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("PATCH /availability/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Update(r.Context(), windowID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrWindowNotFound):
			h.logger.Warn("PATCH /availability/{id} - Window not found: window_id=%s, user_id=%s", windowID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrInvalidTimeRange):
			h.logger.Warn("PATCH /availability/{id} - Invalid time range: window_id=%s", windowID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PATCH /availability/{id} - Invalid input: window_id=%s, error=%v", windowID, err)
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, availability.ErrWindowOverlap):
			h.logger.Warn("PATCH /availability/{id} - Window overlap: window_id=%s", windowID)
			handlers.RespondConflict(w, msgOverlap)

		default:
			h.logger.Error("PATCH /availability/{id} - Failed to update window: window_id=%s, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /availability/{id} - Window updated successfully: window_id=%s, user_id=%s", windowID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
