package get_quota_availability

import (
	"context"

	getQuotaAvailability "github.com/m04kA/SMC-DockBookingService/internal/usecase/get_quota_availability"
)

type GetQuotaAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getQuotaAvailability.Request) (*getQuotaAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
