package get_statistics

import (
	"errors"
	"net/http"

	"github.com/orienta-vg/consultation-service/internal/api/handlers"
	"github.com/orienta-vg/consultation-service/internal/api/middleware"
	"github.com/orienta-vg/consultation-service/internal/service/consultations"
)

const msgForbidden = "acceso denegado"

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

// Handle GET /api/v1/statistics?psychologistId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	var psychologistID *string
	if raw := r.URL.Query().Get("psychologistId"); raw != "" {
		psychologistID = &raw
	}

	result, err := h.service.GetStatistics(r.Context(), psychologistID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("GET /statistics - Access denied: user_id=%s, role=%s", userID, role)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /statistics - Failed to get statistics: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /statistics - Statistics retrieved successfully: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
