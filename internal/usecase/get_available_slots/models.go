package get_available_slots

import (
	"time"

	"github.com/orienta-vg/consultation-service/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	PsychologistID string    // ID психолога
	Date           time.Time // Дата (без времени) в локальном календаре сервиса
}

// Response модель ответа со списком открытых слотов
type Response struct {
	PsychologistID      string             // ID психолога
	Date                time.Time          // Запрошенная дата
	SlotDurationMinutes int                // Длительность слота
	Slots               []types.TimeString // Времена начала открытых слотов, по возрастанию
}
