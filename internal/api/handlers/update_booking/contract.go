package update_booking

import (
	"context"

	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings/models"
)

type BookingService interface {
	UpdateDetails(ctx context.Context, bookingID int64, req *models.UpdateDetailsRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
