package availability

import "errors"

var (
	// ErrPsychologistNotFound возвращается, когда психолог не найден или неактивен
	ErrPsychologistNotFound = errors.New("psychologist not found or inactive")

	// ErrInvalidDay возвращается при некорректном дне недели
	ErrInvalidDay = errors.New("day of week must be between 0 (Sunday) and 6 (Saturday)")

	// ErrInvalidTimeRange возвращается, когда начало окна не раньше его конца
	ErrInvalidTimeRange = errors.New("start time must be before end time")

	// ErrWindowOverlap возвращается, когда окно пересекается с существующим активным окном
	ErrWindowOverlap = errors.New("window overlaps an existing active window")

	// ErrWindowNotFound возвращается, когда окно не найдено или принадлежит другому психологу
	ErrWindowNotFound = errors.New("availability window not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability service: internal error")
)
