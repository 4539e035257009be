package update_consultation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orienta-vg/consultation-service/internal/api/handlers"
	"github.com/orienta-vg/consultation-service/internal/api/middleware"
	"github.com/orienta-vg/consultation-service/internal/service/consultations"
)

const (
	msgInvalidRequestBody = "cuerpo de solicitud inválido"
	msgNotFound           = "consulta no encontrada"
	msgForbidden          = "acceso denegado"
	msgIllegalTransition  = "transición de estado no permitida"
	msgTerminal           = "una consulta completada no puede modificarse"
	msgImmutable          = "la consulta ya no puede modificarse"
	msgInvalidStatus      = "estado de consulta inválido"
	msgInvalidInput       = "datos de entrada inválidos"
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

// Handle PATCH /api/v1/consultations/{consultationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	consultationID := mux.Vars(r)["consultationId"]

	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	var req UpdateConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /consultations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), consultationID, req.ToServiceRequest(userID, role))
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("PATCH /consultations/{id} - Consultation not found: consultation_id=%s", consultationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, consultations.ErrAccessDenied):
			h.logger.Warn("PATCH /consultations/{id} - Access denied: consultation_id=%s, user_id=%s", consultationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, consultations.ErrTerminalStatus):
			h.logger.Warn("PATCH /consultations/{id} - Completed consultation: consultation_id=%s", consultationID)
			handlers.RespondConflict(w, msgTerminal)

		case errors.Is(err, consultations.ErrImmutable):
			h.logger.Warn("PATCH /consultations/{id} - Consultation no longer editable: consultation_id=%s", consultationID)
			handlers.RespondConflict(w, msgImmutable)

		case errors.Is(err, consultations.ErrIllegalTransition):
			h.logger.Warn("PATCH /consultations/{id} - Illegal transition: consultation_id=%s, user_id=%s, role=%s",
				consultationID, userID, role)
			handlers.RespondConflict(w, msgIllegalTransition)

		case errors.Is(err, consultations.ErrInvalidStatus):
			h.logger.Warn("PATCH /consultations/{id} - Invalid status: consultation_id=%s, error=%v", consultationID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("PATCH /consultations/{id} - Invalid input: consultation_id=%s, error=%v", consultationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /consultations/{id} - Failed to update consultation: consultation_id=%s, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /consultations/{id} - Consultation updated successfully: consultation_id=%s, user_id=%s, status=%s",
		consultationID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
