package get_quota_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
)

// ReferenceRepository интерфейс справочников
type ReferenceRepository interface {
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
	GetTransportType(ctx context.Context, id int64) (*domain.TransportType, error)
}

// QuotaReporter интерфейс сервиса квот
type QuotaReporter interface {
	Availability(
		ctx context.Context,
		facilityID int64,
		direction domain.Direction,
		transportTypeID int64,
		from, to time.Time,
	) ([]quota.DayAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
