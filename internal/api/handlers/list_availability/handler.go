package list_availability

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orienta-vg/consultation-service/internal/api/handlers"
)

const msgMissingPsychologistID = "falta el ID del psicólogo"

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

// Handle GET /api/v1/psychologists/{psychologistId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	psychologistID := vars["psychologistId"]
	if psychologistID == "" {
		h.logger.Warn("GET /psychologists/{id}/availability - Missing psychologist ID")
		handlers.RespondBadRequest(w, msgMissingPsychologistID)
		return
	}

	result, err := h.service.ListByPsychologist(r.Context(), psychologistID)
	if err != nil {
		h.logger.Error("GET /psychologists/{id}/availability - Failed to list windows: psychologist_id=%s, error=%v",
			psychologistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /psychologists/{id}/availability - Retrieved %d windows: psychologist_id=%s",
		len(result.Windows), psychologistID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
