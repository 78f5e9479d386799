package events

import (
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

const (
	// RoutingBookingCreated ключ маршрутизации события создания бронирования
	RoutingBookingCreated = "booking.created"
	// RoutingBookingCancelled ключ маршрутизации события отмены бронирования
	RoutingBookingCancelled = "booking.cancelled"
)

// BookingEvent тело события о бронировании
type BookingEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`

	BookingID       int64    `json:"bookingId"`
	UserID          int64    `json:"userId"`
	FacilityID      int64    `json:"facilityId"`
	Direction       string   `json:"direction"`
	Status          string   `json:"status"`
	TransportTypeID *int64   `json:"transportTypeId,omitempty"`
	Cubes           *float64 `json:"cubes,omitempty"`
	DockID          *int64   `json:"dockId,omitempty"`
	Date            string   `json:"date,omitempty"`
	StartTime       string   `json:"startTime,omitempty"`
	EndTime         string   `json:"endTime,omitempty"`
	SlotIDs         []int64  `json:"slotIds"`
}

func newBookingEvent(id, eventType string, b *domain.Booking, now time.Time) BookingEvent {
	event := BookingEvent{
		EventID:         id,
		Type:            eventType,
		OccurredAt:      now.UTC(),
		BookingID:       b.ID,
		UserID:          b.UserID,
		FacilityID:      b.FacilityID,
		Direction:       string(b.Direction),
		Status:          string(b.Status),
		TransportTypeID: b.TransportTypeID,
		Cubes:           b.Cubes,
		SlotIDs:         make([]int64, 0, len(b.Slots)),
	}

	for _, s := range b.Slots {
		event.SlotIDs = append(event.SlotIDs, s.ID)
	}

	if dockID, date, start, end, ok := b.Span(); ok {
		event.DockID = &dockID
		event.Date = date.Format(domain.DateFormat)
		event.StartTime = start.String()
		event.EndTime = end.String()
	}

	return event
}
