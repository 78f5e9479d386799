package set_slot_availability

import (
	"context"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

type SlotService interface {
	SetAvailability(ctx context.Context, slotID int64, available bool) (*domain.TimeSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
