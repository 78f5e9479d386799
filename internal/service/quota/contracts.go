package quota

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

// QuotaRepository интерфейс репозитория квот объёма
type QuotaRepository interface {
	FindForDate(ctx context.Context, facilityID int64, direction domain.Direction, transportTypeID int64, date time.Time) (*domain.VolumeQuota, error)
	UsedVolume(ctx context.Context, facilityID int64, direction domain.Direction, transportTypeID int64, date time.Time) (float64, error)
	UsedVolumeByDate(ctx context.Context, facilityID int64, direction domain.Direction, transportTypeID int64, from, to time.Time) (map[string]float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
