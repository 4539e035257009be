package deactivate_availability

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
	msgNotFound        = "horario de disponibilidad no encontrado"
	msgNotPsychologist = "solo los psicólogos pueden administrar su disponibilidad"
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

// Handle DELETE /api/v1/availability/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	windowID := mux.Vars(r)["windowId"]

	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	if role != domain.RolePsychologist {
		h.logger.Warn("DELETE /availability/{id} - Role %s cannot manage availability: user_id=%s", role, userID)
		handlers.RespondForbidden(w, msgNotPsychologist)
		return
	}

	if err := h.service.Deactivate(r.Context(), windowID, userID); err != nil {
		switch {
		case errors.Is(err, availability.ErrWindowNotFound):
			h.logger.Warn("DELETE /availability/{id} - Window not found: window_id=%s, user_id=%s", windowID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to deactivate window: window_id=%s, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Window deactivated successfully: window_id=%s, user_id=%s", windowID, userID)
	w.WriteHeader(http.StatusNoContent)
}
