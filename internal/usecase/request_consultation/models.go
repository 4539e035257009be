package request_consultation

import (
	"time"

	"github.com/orienta-vg/consultation-service/pkg/types"
)

// Request модель запроса консультации
type Request struct {
	StudentID       string           // ID студента
	PsychologistID  string           // ID психолога
	Date            time.Time        // Дата консультации (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes *int             // Длительность в минутах (опционально)
	StudentNotes    *string          // Заметки студента (опционально)
}

// Response модель ответа с созданной консультацией
type Response struct {
	ID              string    // ID созданной консультации
	StudentID       string    // ID студента
	PsychologistID  string    // ID психолога
	ScheduledAt     time.Time // Момент начала (UTC)
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус консультации
	StudentNotes    *string   // Заметки студента
	CreatedAt       time.Time // Время создания
	UpdatedAt       time.Time // Время обновления
}
