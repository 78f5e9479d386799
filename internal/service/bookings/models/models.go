package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID    int64      `json:"userId"`
	Status    *string    `json:"status,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода по дате слота (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserBookingsRequest) ToDomainFilter() (domain.UserBookingsFilter, error) {
	filter := domain.UserBookingsFilter{
		UserID:    r.UserID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateDetailsRequest запрос на изменение объёма и данных транспортного листа
// nil поле не меняется
type UpdateDetailsRequest struct {
	UserID         int64    `json:"-"`
	Cubes          *float64 `json:"cubes,omitempty"`
	VehiclePlate   *string  `json:"vehiclePlate,omitempty"`
	DriverFullName *string  `json:"driverFullName,omitempty"`
	DriverPhone    *string  `json:"driverPhone,omitempty"`
	TransportSheet *string  `json:"transportSheet,omitempty"`
}

// Response модели

// SlotResponse слот бронирования
type SlotResponse struct {
	ID        int64  `json:"id"`
	DockID    int64  `json:"dockId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"userId"`
	FacilityID      int64    `json:"facilityId"`
	Direction       string   `json:"direction"`
	VehicleTypeID   int64    `json:"vehicleTypeId"`
	SupplierID      *int64   `json:"supplierId,omitempty"`
	ZoneID          *int64   `json:"zoneId,omitempty"`
	TransportTypeID *int64   `json:"transportTypeId,omitempty"`
	Cubes           *float64 `json:"cubes,omitempty"`
	Status          string   `json:"status"`

	// Данные транспортного листа
	VehiclePlate   string  `json:"vehiclePlate,omitempty"`
	DriverFullName string  `json:"driverFullName,omitempty"`
	DriverPhone    string  `json:"driverPhone,omitempty"`
	TransportSheet *string `json:"transportSheet,omitempty"`

	// Сводка по занятым слотам
	DockID    *int64         `json:"dockId,omitempty"`
	Date      string         `json:"date,omitempty"`
	StartTime string         `json:"startTime,omitempty"`
	EndTime   string         `json:"endTime,omitempty"`
	Slots     []SlotResponse `json:"slots"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		FacilityID:      b.FacilityID,
		Direction:       string(b.Direction),
		VehicleTypeID:   b.VehicleTypeID,
		SupplierID:      b.SupplierID,
		ZoneID:          b.ZoneID,
		TransportTypeID: b.TransportTypeID,
		Cubes:           b.Cubes,
		Status:          string(b.Status),
		VehiclePlate:    b.VehiclePlate,
		DriverFullName:  b.DriverFullName,
		DriverPhone:     b.DriverPhone,
		TransportSheet:  b.TransportSheet,
		Slots:           make([]SlotResponse, 0, len(b.Slots)),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	for _, s := range b.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			ID:        s.ID,
			DockID:    s.DockID,
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}

	// Первый слот задает док и начало, последний - окончание
	if dockID, date, start, end, ok := b.Span(); ok {
		resp.DockID = &dockID
		resp.Date = date.Format(domain.DateFormat)
		resp.StartTime = start.String()
		resp.EndTime = end.String()
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
