package domain

import (
	"fmt"
	"slices"
	"time"
)

// VolumeQuota caps the total declared volume of confirmed bookings for one
// facility, direction and calendar cell (year, month, weekday) across a set of transport types
type VolumeQuota struct {
	ID               int64
	FacilityID       int64
	Direction        Direction
	Year             int
	Month            time.Month
	DayOfWeek        int // 0 = Monday ... 6 = Sunday
	Volume           float64
	AllowOverbooking bool
	TransportTypeIDs []int64
	Overrides        []VolumeQuotaOverride
}

// VolumeQuotaOverride replaces the quota volume on one concrete date
type VolumeQuotaOverride struct {
	Date   time.Time
	Volume float64
}

// WeekdayIndex converts a date into the quota weekday numbering (Monday = 0)
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// SameDate compares calendar dates ignoring time of day
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Matches reports whether the quota governs the given date and transport type
func (q *VolumeQuota) Matches(date time.Time, transportTypeID int64) bool {
	return q.Year == date.Year() &&
		q.Month == date.Month() &&
		q.DayOfWeek == WeekdayIndex(date) &&
		slices.Contains(q.TransportTypeIDs, transportTypeID)
}

// EffectiveVolume returns the override volume for date, or the quota volume
func (q *VolumeQuota) EffectiveVolume(date time.Time) float64 {
	for _, ov := range q.Overrides {
		if SameDate(ov.Date, date) {
			return ov.Volume
		}
	}
	return q.Volume
}

// ValidateOverrides checks override dates are unique, fall into the quota
// year/month, match its weekday and carry a positive volume
func (q *VolumeQuota) ValidateOverrides() error {
	seen := make(map[string]struct{}, len(q.Overrides))
	for _, ov := range q.Overrides {
		key := ov.Date.Format(DateFormat)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: override dates must be unique within a quota (%s)", ErrValidation, key)
		}
		seen[key] = struct{}{}

		if ov.Date.Year() != q.Year || ov.Date.Month() != q.Month {
			return fmt.Errorf("%w: override date %s must be within %04d-%02d", ErrValidation, key, q.Year, int(q.Month))
		}
		if WeekdayIndex(ov.Date) != q.DayOfWeek {
			return fmt.Errorf("%w: override date %s must match the quota weekday", ErrValidation, key)
		}
		if ov.Volume <= 0 {
			return fmt.Errorf("%w: override volume must be greater than 0", ErrValidation)
		}
	}
	return nil
}

// Validate checks the quota itself and its overrides
func (q *VolumeQuota) Validate() error {
	if q.Direction != DirectionInbound && q.Direction != DirectionOutbound {
		return fmt.Errorf("%w: unknown quota direction %q", ErrValidation, q.Direction)
	}
	if q.Month < time.January || q.Month > time.December {
		return fmt.Errorf("%w: month must be in 1..12", ErrValidation)
	}
	if q.DayOfWeek < 0 || q.DayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week must be in 0..6", ErrValidation)
	}
	if q.Volume < 0 {
		return fmt.Errorf("%w: volume must not be negative", ErrValidation)
	}
	if len(q.TransportTypeIDs) == 0 {
		return fmt.Errorf("%w: transport types are required", ErrValidation)
	}
	return q.ValidateOverrides()
}

// SameCell reports whether two quotas govern the same facility/direction/calendar cell
func (q *VolumeQuota) SameCell(other *VolumeQuota) bool {
	return q.FacilityID == other.FacilityID &&
		q.Direction == other.Direction &&
		q.Year == other.Year &&
		q.Month == other.Month &&
		q.DayOfWeek == other.DayOfWeek
}

// FindTransportTypeOverlap returns the first existing quota of the same cell
// sharing a transport type with candidate. Quotas with the candidate ID are ignored.
func FindTransportTypeOverlap(candidate *VolumeQuota, existing []*VolumeQuota) *VolumeQuota {
	for _, q := range existing {
		if q.ID != 0 && q.ID == candidate.ID {
			continue
		}
		if !candidate.SameCell(q) {
			continue
		}
		for _, tt := range candidate.TransportTypeIDs {
			if slices.Contains(q.TransportTypeIDs, tt) {
				return q
			}
		}
	}
	return nil
}

// EnsureNoOverlap returns a validation error if candidate shares a transport type with a sibling quota
func EnsureNoOverlap(candidate *VolumeQuota, existing []*VolumeQuota) error {
	if conflict := FindTransportTypeOverlap(candidate, existing); conflict != nil {
		return fmt.Errorf("%w: quota already exists for the selected transport types (conflict with quota #%d)",
			ErrValidation, conflict.ID)
	}
	return nil
}
