package consultations

import "errors"

var (
	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = errors.New("consultation not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrIllegalTransition возвращается при переходе, не разрешённом таблицей статусов
	ErrIllegalTransition = errors.New("status transition not allowed")

	// ErrTerminalStatus возвращается при попытке изменить завершённую консультацию
	ErrTerminalStatus = errors.New("completed consultation is immutable")

	// ErrImmutable возвращается при попытке изменить отменённую или отклонённую консультацию
	ErrImmutable = errors.New("consultation is no longer editable")

	// ErrCannotCancel возвращается, когда консультация не может быть отменена
	ErrCannotCancel = errors.New("consultation cannot be cancelled")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid consultation status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("consultations service: internal error")
)
