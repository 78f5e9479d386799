package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// ReferenceRepository интерфейс справочников
type ReferenceRepository interface {
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
	ListDocks(ctx context.Context, facilityID int64) ([]*domain.Dock, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// ListAvailableFrom доступные слоты дока на дату, начиная с from, по времени начала
	ListAvailableFrom(ctx context.Context, dockID int64, date time.Time, from types.TimeString) ([]*domain.TimeSlot, error)
	CountOccupancy(ctx context.Context, slotIDs []int64) (map[int64]int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
