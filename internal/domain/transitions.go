package domain

import "errors"

var (
	// ErrTerminalStatus возвращается при попытке перевести завершённую консультацию
	ErrTerminalStatus = errors.New("domain: completed consultation accepts no transitions")

	// ErrIllegalTransition возвращается, когда переход не разрешён таблицей для роли
	ErrIllegalTransition = errors.New("domain: status transition not allowed for role")
)

type transitionKey struct {
	from ConsultationStatus
	role Role
}

// transitionTable enumerates every legal (current status, actor role) → new
// status move. Anything absent is illegal; there are no silent no-ops.
var transitionTable = map[transitionKey][]ConsultationStatus{
	{StatusPending, RoleStudent}: {StatusCancelled},

	{StatusPending, RolePsychologist}:  {StatusAccepted, StatusRejected},
	{StatusAccepted, RolePsychologist}: {StatusCompleted, StatusCancelled},

	// Admins follow the psychologist table plus an unconditional cancel
	// override handled in ValidateTransition.
	{StatusPending, RoleAdmin}:  {StatusAccepted, StatusRejected},
	{StatusAccepted, RoleAdmin}: {StatusCompleted, StatusCancelled},
}

// ValidateTransition checks whether role may move a consultation from current
// to next. COMPLETED is immutable for every role.
func ValidateTransition(current, next ConsultationStatus, role Role) error {
	if current == StatusCompleted {
		return ErrTerminalStatus
	}

	if role == RoleAdmin && next == StatusCancelled {
		return nil
	}

	for _, allowed := range transitionTable[transitionKey{current, role}] {
		if allowed == next {
			return nil
		}
	}

	return ErrIllegalTransition
}
