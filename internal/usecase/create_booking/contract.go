package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/internal/service/docks"
	"github.com/m04kA/SMC-DockBookingService/internal/service/duration"
	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
	"github.com/m04kA/SMC-DockBookingService/internal/service/slotchain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CreateLinks(ctx context.Context, bookingID int64, slotIDs []int64) error
}

// ReferenceRepository интерфейс справочников
type ReferenceRepository interface {
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
	GetDock(ctx context.Context, id int64) (*domain.Dock, error)
	GetVehicleType(ctx context.Context, id int64) (*domain.VehicleType, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	GetTransportType(ctx context.Context, id int64) (*domain.TransportType, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

// DurationResolver определяет длительность ПРР
type DurationResolver interface {
	Resolve(ctx context.Context, q duration.Query) (int, error)
}

// DockSelector подбирает доки-кандидаты
type DockSelector interface {
	Candidates(ctx context.Context, q docks.Query) ([]*domain.Dock, error)
}

// ChainSearcher ищет цепочку слотов на доке
type ChainSearcher interface {
	Search(ctx context.Context, req slotchain.Request) (*slotchain.Chain, error)
}

// QuotaAdmitter проверяет объём по квоте
type QuotaAdmitter interface {
	Admit(ctx context.Context, q quota.Query) (*quota.Decision, error)
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	BookingCreated(ctx context.Context, b *domain.Booking) error
}

// Metrics бизнес-метрики распределения
type Metrics interface {
	ObserveAllocation(direction, outcome string, dockTries int)
	ObserveQuotaRejection(direction, reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
