package get_consultation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orienta-vg/consultation-service/internal/api/handlers"
	"github.com/orienta-vg/consultation-service/internal/api/middleware"
	"github.com/orienta-vg/consultation-service/internal/service/consultations"
)

const (
	msgNotFound  = "consulta no encontrada"
	msgForbidden = "acceso denegado"
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

// Handle GET /api/v1/consultations/{consultationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	consultationID := mux.Vars(r)["consultationId"]

	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	result, err := h.service.GetByID(r.Context(), consultationID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("GET /consultations/{id} - Consultation not found: consultation_id=%s", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("GET /consultations/{id} - Access denied: consultation_id=%s, user_id=%s", consultationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /consultations/{id} - Failed to get consultation: consultation_id=%s, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultations/{id} - Consultation retrieved successfully: consultation_id=%s, user_id=%s",
		consultationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
