package request_consultation

import (
	"errors"
	"net/http"

	"github.com/orienta-vg/consultation-service/internal/api/handlers"
	"github.com/orienta-vg/consultation-service/internal/api/middleware"
	"github.com/orienta-vg/consultation-service/internal/domain"
	requestConsultation "github.com/orienta-vg/consultation-service/internal/usecase/request_consultation"
)

const (
	msgInvalidRequestBody  = "cuerpo de solicitud inválido"
	msgInvalidDateOrTime   = "formato de fecha u hora inválido, se espera YYYY-MM-DD y HH:MM"
	msgOnlyStudents        = "solo los estudiantes pueden solicitar consultas"
	msgPsychNotFound       = "psicólogo no encontrado"
	msgPastDate            = "la fecha y hora solicitadas ya pasaron"
	msgOutsideAvailability = "el horario solicitado está fuera de la disponibilidad del psicólogo"
	msgSlotTaken           = "el horario solicitado ya está reservado"
	msgInvalidDuration     = "duración de consulta inválida"
)

type Handler struct {
	useCase RequestConsultationUseCase
	logger  Logger
}

func NewHandler(useCase RequestConsultationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/consultations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())
	role, _ := middleware.GetUserRole(r.Context())

	if role != domain.RoleStudent {
		h.logger.Warn("POST /consultations - Role %s cannot request consultations: user_id=%s", role, userID)
		handlers.RespondForbidden(w, msgOnlyStudents)
		return
	}

	var req RequestConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /consultations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /consultations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestConsultation.ErrSlotTaken):
			h.logger.Warn("POST /consultations - Slot taken: student_id=%s, psychologist_id=%s", userID, req.PsychologistID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, requestConsultation.ErrOutsideAvailability):
			h.logger.Warn("POST /consultations - Outside availability: student_id=%s, psychologist_id=%s", userID, req.PsychologistID)
			handlers.RespondConflict(w, msgOutsideAvailability)

		case errors.Is(err, requestConsultation.ErrPastDate):
			h.logger.Warn("POST /consultations - Past date: student_id=%s, date=%s %s", userID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, requestConsultation.ErrPsychologistNotFound):
			h.logger.Warn("POST /consultations - Psychologist not found: psychologist_id=%s", req.PsychologistID)
			handlers.RespondNotFound(w, msgPsychNotFound)

		case errors.Is(err, requestConsultation.ErrInvalidDuration):
			h.logger.Warn("POST /consultations - Invalid duration: student_id=%s", userID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, requestConsultation.ErrInvalidInput):
			h.logger.Warn("POST /consultations - Invalid input: student_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /consultations - Failed to create consultation: student_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /consultations - Consultation created successfully: consultation_id=%s, student_id=%s",
		result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
