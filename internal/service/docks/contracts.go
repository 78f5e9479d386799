package docks

import (
	"context"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

// DockRepository интерфейс справочника доков
type DockRepository interface {
	ListDocks(ctx context.Context, facilityID int64) ([]*domain.Dock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
