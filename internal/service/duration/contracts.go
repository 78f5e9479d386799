package duration

import (
	"context"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

// RuleRepository интерфейс репозитория правил длительности
type RuleRepository interface {
	GetByKey(ctx context.Context, facilityID int64, supplierID, transportTypeID, vehicleTypeID *int64) (*domain.DurationRule, error)
}

// VehicleTypeRepository интерфейс справочника типов ТС
type VehicleTypeRepository interface {
	GetVehicleType(ctx context.Context, id int64) (*domain.VehicleType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
