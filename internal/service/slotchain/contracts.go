package slotchain

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListAvailableFrom(ctx context.Context, dockID int64, date time.Time, from types.TimeString) ([]*domain.TimeSlot, error)
	CountOccupancy(ctx context.Context, slotIDs []int64) (map[int64]int, error)
	LockSlots(ctx context.Context, slotIDs []int64) (int, error)
	CountDirectional(
		ctx context.Context,
		facilityID int64,
		direction domain.Direction,
		dockTypes []domain.DockType,
		date time.Time,
		start, end types.TimeString,
	) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
