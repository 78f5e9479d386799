package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// Request модель запроса на получение свободных слотов объекта
type Request struct {
	UserID     int64            // ID пользователя (для логирования, не влияет на результат)
	FacilityID int64            // ID объекта
	Direction  domain.Direction // Направление: учитываются только совместимые доки
	Date       time.Time        // Дата (без времени)
}

// Response модель ответа со слотами по докам
type Response struct {
	Date       time.Time
	FacilityID int64
	Direction  domain.Direction
	Docks      []Dock
}

// Dock свободные слоты одного дока
type Dock struct {
	ID       int64
	Name     string
	DockType domain.DockType
	Slots    []Slot
}

// Slot модель временного слота
type Slot struct {
	ID              int64
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString
	DurationMinutes int // Длительность слота в минутах
	AvailableSpots  int // Количество свободных мест
	TotalSpots      int // Общее количество мест
}
