package get_psychologist_consultations

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orienta-vg/consultation-service/internal/api/handlers"
	"github.com/orienta-vg/consultation-service/internal/api/middleware"
	"github.com/orienta-vg/consultation-service/internal/service/consultations"
	"github.com/orienta-vg/consultation-service/internal/service/consultations/models"
)

const (
	msgForbidden     = "acceso denegado"
	msgInvalidStatus = "estado de consulta inválido"
)

type Handler struct {
	service ConsultationService
	logger  Logger
}

func NewHandler(service ConsultationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/psychologists/{psychologistId}/consultations?status=accepted
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	psychologistID := mux.Vars(r)["psychologistId"]

	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.GetByPsychologist(r.Context(), psychologistID, &models.ListRequest{
		ActorID:   userID,
		ActorRole: role,
		Status:    status,
	})
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("GET /psychologists/{id}/consultations - Access denied: psychologist_id=%s, user_id=%s",
				psychologistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrInvalidStatus):
			h.logger.Warn("GET /psychologists/{id}/consultations - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /psychologists/{id}/consultations - Failed to list consultations: psychologist_id=%s, error=%v",
				psychologistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /psychologists/{id}/consultations - Retrieved %d consultations: psychologist_id=%s",
		len(result.Consultations), psychologistID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
