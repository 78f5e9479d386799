package domain

import (
	"time"

	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// TimeSlot is a capacity-limited time window of a single dock
type TimeSlot struct {
	ID          int64
	DockID      int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int
	IsAvailable bool
}

// DurationMinutes returns the slot length. Malformed slots report 0, as do
// slots crossing midnight (end at or before start), which are not supported.
func (s *TimeSlot) DurationMinutes() int {
	minutes, err := s.StartTime.MinutesUntil(s.EndTime)
	if err != nil || minutes < 0 {
		return 0
	}
	return minutes
}

// SlotOccupancy is a slot together with the number of confirmed bookings linked to it
type SlotOccupancy struct {
	Slot      *TimeSlot
	Occupancy int
}

// HasRoom returns true if one more booking fits into the slot
func (s *SlotOccupancy) HasRoom() bool {
	return s.Occupancy < s.Slot.Capacity
}

// AvailableSpots returns how many more bookings fit into the slot
func (s *SlotOccupancy) AvailableSpots() int {
	if s.Occupancy >= s.Slot.Capacity {
		return 0
	}
	return s.Slot.Capacity - s.Occupancy
}
