package create_booking

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

type fieldLimit struct {
	name  string
	value string
	max   int
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	if req.VehicleTypeID <= 0 {
		return fmt.Errorf("%w: vehicleTypeID must be positive", ErrInvalidInput)
	}

	if req.Direction != domain.DirectionInbound && req.Direction != domain.DirectionOutbound {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, req.Direction)
	}

	// Без стартового слота нужны дата и время
	if req.TimeSlotID == nil {
		if req.Date.IsZero() {
			return fmt.Errorf("%w: date is required", ErrInvalidInput)
		}
		if req.StartTime.IsZero() {
			return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
		}
	} else if *req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: timeSlotID must be positive", ErrInvalidInput)
	}

	if !req.StartTime.IsZero() {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.Cubes != nil && *req.Cubes < 0 {
		return fmt.Errorf("%w: cubes must not be negative", ErrInvalidInput)
	}

	limits := []fieldLimit{
		{"vehiclePlate", req.VehiclePlate, domain.MaxVehiclePlateLength},
		{"driverFullName", req.DriverFullName, domain.MaxDriverNameLength},
		{"driverPhone", req.DriverPhone, domain.MaxDriverPhoneLength},
	}
	if req.TransportSheet != nil {
		limits = append(limits, fieldLimit{"transportSheet", *req.TransportSheet, domain.MaxTransportSheetLength})
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return fmt.Errorf("%w: %s longer than %d characters", ErrInvalidInput, l.name, l.max)
		}
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, bookingDate.Format(domain.DateFormat))
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
