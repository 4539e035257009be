package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		current ConsultationStatus
		next    ConsultationStatus
		role    Role
		wantErr error
	}{
		{name: "psychologist accepts pending", current: StatusPending, next: StatusAccepted, role: RolePsychologist},
		{name: "psychologist rejects pending", current: StatusPending, next: StatusRejected, role: RolePsychologist},
		{name: "psychologist completes accepted", current: StatusAccepted, next: StatusCompleted, role: RolePsychologist},
		{name: "psychologist cancels accepted", current: StatusAccepted, next: StatusCancelled, role: RolePsychologist},
		{name: "student cancels pending", current: StatusPending, next: StatusCancelled, role: RoleStudent},
		{name: "admin accepts pending", current: StatusPending, next: StatusAccepted, role: RoleAdmin},
		{name: "admin cancels rejected", current: StatusRejected, next: StatusCancelled, role: RoleAdmin},

		{name: "student cannot accept", current: StatusPending, next: StatusAccepted, role: RoleStudent, wantErr: ErrIllegalTransition},
		{name: "student cannot cancel accepted", current: StatusAccepted, next: StatusCancelled, role: RoleStudent, wantErr: ErrIllegalTransition},
		{name: "psychologist cannot complete pending", current: StatusPending, next: StatusCompleted, role: RolePsychologist, wantErr: ErrIllegalTransition},
		{name: "no transition out of cancelled", current: StatusCancelled, next: StatusPending, role: RolePsychologist, wantErr: ErrIllegalTransition},
		{name: "no transition out of rejected", current: StatusRejected, next: StatusAccepted, role: RolePsychologist, wantErr: ErrIllegalTransition},

		{name: "completed is terminal for psychologist", current: StatusCompleted, next: StatusCancelled, role: RolePsychologist, wantErr: ErrTerminalStatus},
		{name: "completed is terminal even for admin", current: StatusCompleted, next: StatusCancelled, role: RoleAdmin, wantErr: ErrTerminalStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.current, tt.next, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// Every (status, role) pair must resolve without panicking, including pairs
// absent from the table.
func TestValidateTransitionTotality(t *testing.T) {
	statuses := []ConsultationStatus{StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled}
	roles := []Role{RoleStudent, RolePsychologist, RoleAdmin}

	for _, from := range statuses {
		for _, to := range statuses {
			for _, role := range roles {
				err := ValidateTransition(from, to, role)
				if from == StatusCompleted {
					assert.ErrorIs(t, err, ErrTerminalStatus)
				} else if err != nil {
					assert.ErrorIs(t, err, ErrIllegalTransition)
				}
			}
		}
	}
}
