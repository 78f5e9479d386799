package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DockBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string         `json:"date"`
	FacilityID int64          `json:"facilityId"`
	Direction  string         `json:"direction"`
	Docks      []DockResponse `json:"docks"`
}

// DockResponse свободные слоты дока
type DockResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	DockType string          `json:"dockType"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	ID              int64  `json:"id"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	docks := make([]DockResponse, len(resp.Docks))
	for i, dock := range resp.Docks {
		slots := make([]AvailableSlot, len(dock.Slots))
		for j, slot := range dock.Slots {
			slots[j] = AvailableSlot{
				ID:              slot.ID,
				StartTime:       slot.StartTime.String(),
				EndTime:         slot.EndTime.String(),
				DurationMinutes: slot.DurationMinutes,
				AvailableSpots:  slot.AvailableSpots,
				TotalSpots:      slot.TotalSpots,
			}
		}
		docks[i] = DockResponse{
			ID:       dock.ID,
			Name:     dock.Name,
			DockType: string(dock.DockType),
			Slots:    slots,
		}
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		FacilityID: resp.FacilityID,
		Direction:  string(resp.Direction),
		Docks:      docks,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(userID, facilityID int64, direction, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	dir, err := domain.ParseDirection(direction)
	if err != nil {
		return nil, fmt.Errorf("direction: %w", err)
	}

	return &getAvailableSlots.Request{
		UserID:     userID,
		FacilityID: facilityID,
		Direction:  dir,
		Date:       date,
	}, nil
}
