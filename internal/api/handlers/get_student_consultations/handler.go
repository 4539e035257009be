package get_student_consultations

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

// Handle GET /api/v1/students/{studentId}/consultations?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID := mux.Vars(r)["studentId"]

	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.GetByStudent(r.Context(), studentID, &models.ListRequest{
		ActorID:   userID,
		ActorRole: role,
		Status:    status,
	})
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("GET /students/{id}/consultations - Access denied: student_id=%s, user_id=%s", studentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrInvalidStatus):
			h.logger.Warn("GET /students/{id}/consultations - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /students/{id}/consultations - Failed to list consultations: student_id=%s, error=%v",
				studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/consultations - Retrieved %d consultations: student_id=%s",
		len(result.Consultations), studentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
