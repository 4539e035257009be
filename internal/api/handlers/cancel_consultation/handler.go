package cancel_consultation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orienta-vg/consultation-service/internal/api/handlers"
	"github.com/orienta-vg/consultation-service/internal/api/middleware"
	"github.com/orienta-vg/consultation-service/internal/service/consultations"
	"github.com/orienta-vg/consultation-service/internal/service/consultations/models"
)

const (
	msgInvalidRequestBody = "cuerpo de solicitud inválido"
	msgNotFound           = "consulta no encontrada"
	msgForbidden          = "acceso denegado"
	msgCannotCancel       = "una consulta completada no puede cancelarse"
	msgInvalidInput       = "datos de entrada inválidos"
)

// CancelConsultationRequest HTTP request model; тело может отсутствовать
type CancelConsultationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

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

// Handle PATCH /api/v1/consultations/{consultationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	consultationID := mux.Vars(r)["consultationId"]

	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	var req CancelConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /consultations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), consultationID, &models.CancelConsultationRequest{
		ActorID:   userID,
		ActorRole: role,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Consultation not found: consultation_id=%s", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Access denied: consultation_id=%s, user_id=%s",
				consultationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrCannotCancel):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Cannot cancel: consultation_id=%s", consultationID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Invalid input: consultation_id=%s, error=%v",
				consultationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /consultations/{id}/cancel - Failed to cancel consultation: consultation_id=%s, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /consultations/{id}/cancel - Consultation cancelled successfully: consultation_id=%s, user_id=%s",
		consultationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
