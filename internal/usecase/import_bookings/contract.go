package import_bookings

import (
	"context"

	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
	"github.com/m04kA/SMC-DockBookingService/internal/usecase/create_booking"
)

// Allocator проверка и распределение одной строки
type Allocator interface {
	Check(ctx context.Context, req *create_booking.Request) (*create_booking.Plan, error)
	Execute(ctx context.Context, req *create_booking.Request) (*models.BookingResponse, error)
}

// QuotaBatcher создает трекер ожидающего объёма пакета
type QuotaBatcher interface {
	NewBatch() *quota.BatchTracker
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
