package request_consultation

import (
	"fmt"

	"github.com/orienta-vg/consultation-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID == "" {
		return fmt.Errorf("%w: studentID is required", ErrInvalidInput)
	}

	if req.PsychologistID == "" {
		return fmt.Errorf("%w: psychologistID is required", ErrInvalidInput)
	}

	if req.StudentID == req.PsychologistID {
		return fmt.Errorf("%w: student and psychologist must differ", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.StudentNotes != nil && len(*req.StudentNotes) > domain.MaxStudentNotesLength {
		return fmt.Errorf("%w: studentNotes too long", ErrInvalidInput)
	}

	return nil
}

// resolveDuration подставляет длительность по умолчанию и проверяет границы
func resolveDuration(requested *int) (int, error) {
	duration := domain.DefaultDurationMinutes
	if requested != nil {
		duration = *requested
	}

	if duration < domain.MinDurationMinutes || duration > domain.MaxDurationMinutes {
		return 0, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidDuration, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return duration, nil
}
