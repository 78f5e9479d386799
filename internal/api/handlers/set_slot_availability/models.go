package set_slot_availability

import (
	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

// AvailabilityRequest HTTP request model
type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID          int64  `json:"id"`
	DockID      int64  `json:"dockId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Capacity    int    `json:"capacity"`
	IsAvailable bool   `json:"isAvailable"`
}

// FromDomain конвертирует слот в HTTP response
func FromDomain(slot *domain.TimeSlot) *SlotResponse {
	return &SlotResponse{
		ID:          slot.ID,
		DockID:      slot.DockID,
		Date:        slot.Date.Format(domain.DateFormat),
		StartTime:   slot.StartTime.String(),
		EndTime:     slot.EndTime.String(),
		Capacity:    slot.Capacity,
		IsAvailable: slot.IsAvailable,
	}
}
