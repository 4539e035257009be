package request_consultation

import (
	"context"

	requestConsultation "github.com/orienta-vg/consultation-service/internal/usecase/request_consultation"
)

type RequestConsultationUseCase interface {
	Execute(ctx context.Context, req *requestConsultation.Request) (*requestConsultation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
