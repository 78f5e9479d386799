package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-DockBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
// Либо timeSlotId, либо пара date + startTime
type CreateBookingRequest struct {
	FacilityID      int64    `json:"facilityId"`
	Direction       string   `json:"direction"`           // "in" / "out" или "inbound" / "outbound"
	Date            string   `json:"date,omitempty"`      // "2025-10-15"
	StartTime       string   `json:"startTime,omitempty"` // "10:00"
	TimeSlotID      *int64   `json:"timeSlotId,omitempty"`
	VehicleTypeID   int64    `json:"vehicleTypeId"`
	SupplierID      *int64   `json:"supplierId,omitempty"`
	TransportTypeID *int64   `json:"transportTypeId,omitempty"`
	Cubes           *float64 `json:"cubes,omitempty"`
	VehiclePlate    string   `json:"vehiclePlate"`
	DriverFullName  string   `json:"driverFullName"`
	DriverPhone     string   `json:"driverPhone"`
	TransportSheet  *string  `json:"transportSheet,omitempty"`
}

// QuotaRejectionResponse ответ при отказе по квоте
type QuotaRejectionResponse struct {
	Code      int     `json:"code"`
	Message   string  `json:"message"`
	QuotaID   int64   `json:"quotaId"`
	Remaining float64 `json:"remainingVolume"`
	Requested float64 `json:"requestedVolume"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	direction, err := domain.ParseDirection(r.Direction)
	if err != nil {
		return nil, fmt.Errorf("direction: %w", err)
	}

	req := &createBooking.Request{
		UserID:          userID,
		FacilityID:      r.FacilityID,
		Direction:       direction,
		TimeSlotID:      r.TimeSlotID,
		VehicleTypeID:   r.VehicleTypeID,
		SupplierID:      r.SupplierID,
		TransportTypeID: r.TransportTypeID,
		Cubes:           r.Cubes,
		VehiclePlate:    r.VehiclePlate,
		DriverFullName:  r.DriverFullName,
		DriverPhone:     r.DriverPhone,
		TransportSheet:  r.TransportSheet,
	}

	if r.Date != "" {
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.Date = date
	}

	if r.StartTime != "" {
		startTime, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("startTime: %w", err)
		}
		req.StartTime = startTime
	}

	return req, nil
}
