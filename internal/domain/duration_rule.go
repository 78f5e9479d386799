package domain

import "fmt"

// DurationRule overrides the handling duration for a facility.
// Nil components match any value (wildcard). Resolution order:
// 1. (supplier, transport type, vehicle type)
// 2. (supplier, transport type, *)
// 3. (supplier, *, vehicle type)
// 4. (*, transport type, vehicle type)
// 5. (supplier, *, *)
// 6. (*, transport type, *)
// 7. (*, *, vehicle type)
// 8. (*, *, *)
type DurationRule struct {
	ID              int64
	FacilityID      int64
	SupplierID      *int64
	TransportTypeID *int64
	VehicleTypeID   *int64
	DurationMinutes int
}

// IsFacilityDefault returns true for the (*, *, *) rule
func (r *DurationRule) IsFacilityDefault() bool {
	return r.SupplierID == nil && r.TransportTypeID == nil && r.VehicleTypeID == nil
}

// Validate checks the rule duration
func (r *DurationRule) Validate() error {
	return ValidateDurationMinutes(r.DurationMinutes)
}

// ValidateDurationMinutes checks that minutes is a non-negative multiple of DurationStepMinutes
func ValidateDurationMinutes(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("%w: duration must not be negative, got %d", ErrValidation, minutes)
	}
	if minutes%DurationStepMinutes != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes, got %d",
			ErrValidation, DurationStepMinutes, minutes)
	}
	return nil
}
