package bookings

import (
	"context"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateDetails(ctx context.Context, booking *domain.Booking) error
	DeleteLinks(ctx context.Context, bookingID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// QuotaAdmitter интерфейс контроля объёма по квотам
type QuotaAdmitter interface {
	Admit(ctx context.Context, q quota.Query) (*quota.Decision, error)
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	BookingCancelled(ctx context.Context, b *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
