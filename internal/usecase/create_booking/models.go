package create_booking

import (
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64            // ID пользователя
	FacilityID int64            // ID объекта
	Direction  domain.Direction // Направление: in / out
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	TimeSlotID *int64           // Конкретный стартовый слот (опционально, задает дату и время)

	VehicleTypeID   int64
	SupplierID      *int64
	TransportTypeID *int64
	Cubes           *float64 // Заявленный объём

	// Данные транспортного листа
	VehiclePlate   string
	DriverFullName string
	DriverPhone    string
	TransportSheet *string
}

// Outcome метки исхода распределения для метрик
const (
	OutcomeCreated  = "created"
	OutcomeConflict = "conflict"
	OutcomeQuota    = "quota_rejected"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)
