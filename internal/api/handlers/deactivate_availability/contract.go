package deactivate_availability

import "context"

type AvailabilityService interface {
	Deactivate(ctx context.Context, windowID, psychologistID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
