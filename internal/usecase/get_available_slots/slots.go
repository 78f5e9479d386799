package get_available_slots

import (
	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

// calculateAvailableSpots оставляет слоты со свободными местами
// Слоты, на которых все места заняты, не возвращаются
func calculateAvailableSpots(slots []*domain.TimeSlot, occupancy map[int64]int) []Slot {
	result := make([]Slot, 0, len(slots))

	for _, slot := range slots {
		so := domain.SlotOccupancy{Slot: slot, Occupancy: occupancy[slot.ID]}
		if !so.HasRoom() {
			continue
		}

		result = append(result, Slot{
			ID:              slot.ID,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			DurationMinutes: slot.DurationMinutes(),
			AvailableSpots:  so.AvailableSpots(),
			TotalSpots:      slot.Capacity,
		})
	}

	return result
}

// slotIDs собирает ID слотов для одного запроса занятости
func slotIDs(slots []*domain.TimeSlot) []int64 {
	ids := make([]int64, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ID
	}
	return ids
}
