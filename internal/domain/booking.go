package domain

import (
	"time"

	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Booking is a reservation of a contiguous run of slots on one dock
type Booking struct {
	ID              int64
	UserID          int64
	FacilityID      int64
	Direction       Direction
	VehicleTypeID   int64
	SupplierID      *int64
	ZoneID          *int64
	TransportTypeID *int64
	Cubes           *float64
	Status          BookingStatus

	// Reference-sheet annotations
	VehiclePlate   string
	DriverFullName string
	DriverPhone    string
	TransportSheet *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Slots the booking occupies, ordered by start time. Filled by read paths.
	Slots []*TimeSlot
}

// IsActive returns true if the booking holds slot capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeUpdated returns true if volume and annotations can be edited
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusConfirmed
}

// CanBeDeleted returns true if the booking may be removed physically
func (b *Booking) CanBeDeleted() bool {
	return b.Status != StatusConfirmed
}

// Volume returns declared cubes or 0
func (b *Booking) Volume() float64 {
	if b.Cubes == nil {
		return 0
	}
	return *b.Cubes
}

// Span returns dock, date and time bounds of the booked run.
// ok is false if the booking has no slots loaded.
func (b *Booking) Span() (dockID int64, date time.Time, start, end types.TimeString, ok bool) {
	if len(b.Slots) == 0 {
		return 0, time.Time{}, "", "", false
	}
	first := b.Slots[0]
	last := b.Slots[len(b.Slots)-1]
	return first.DockID, first.Date, first.StartTime, last.EndTime, true
}

// BookingSlotLink binds a booking to one occupied slot
type BookingSlotLink struct {
	BookingID  int64
	TimeSlotID int64
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	UserID    int64          // Обязательный параметр
	Status    *BookingStatus // Фильтр по статусу (опционально)
	StartDate *time.Time     // Начало периода по дате первого слота (опционально)
	EndDate   *time.Time     // Конец периода (опционально)
}
