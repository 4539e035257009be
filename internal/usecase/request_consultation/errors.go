package request_consultation

import "errors"

var (
	// ErrPsychologistNotFound возвращается, когда психолог не найден или неактивен
	ErrPsychologistNotFound = errors.New("request_consultation: psychologist not found")

	// ErrPastDate возвращается, когда запрошенное время уже прошло
	ErrPastDate = errors.New("request_consultation: scheduled time is in the past")

	// ErrOutsideAvailability возвращается, когда интервал не помещается в активное окно доступности
	ErrOutsideAvailability = errors.New("request_consultation: time is outside availability windows")

	// ErrSlotTaken возвращается, когда интервал пересекается с принятой консультацией
	ErrSlotTaken = errors.New("request_consultation: slot is already taken")

	// ErrInvalidDuration возвращается при длительности вне допустимых границ
	ErrInvalidDuration = errors.New("request_consultation: invalid duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_consultation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_consultation: internal error")
)
