package domain

import (
	"fmt"
	"slices"
)

// Direction of a booking relative to the facility
type Direction string

const (
	DirectionInbound  Direction = "in"
	DirectionOutbound Direction = "out"
)

// ParseDirection accepts "in"/"out" as well as "inbound"/"outbound"
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "in", "inbound":
		return DirectionInbound, nil
	case "out", "outbound":
		return DirectionOutbound, nil
	default:
		return "", fmt.Errorf("%w: unknown direction %q", ErrValidation, s)
	}
}

// DockType is a closed set of dock kinds
type DockType string

const (
	DockTypeEntrance  DockType = "entrance"
	DockTypeExit      DockType = "exit"
	DockTypeUniversal DockType = "universal"
)

// Valid reports whether t is one of the known dock types
func (t DockType) Valid() bool {
	return t == DockTypeEntrance || t == DockTypeExit || t == DockTypeUniversal
}

// Compatible reports whether a dock of type t can serve direction d.
// entrance serves inbound only, exit serves outbound only, universal serves both.
func Compatible(t DockType, d Direction) bool {
	switch t {
	case DockTypeUniversal:
		return d == DirectionInbound || d == DirectionOutbound
	case DockTypeEntrance:
		return d == DirectionInbound
	case DockTypeExit:
		return d == DirectionOutbound
	default:
		return false
	}
}

// ExactDockType returns the dock type dedicated to direction d
func ExactDockType(d Direction) DockType {
	if d == DirectionOutbound {
		return DockTypeExit
	}
	return DockTypeEntrance
}

// DockTypesFor returns the dock types able to serve direction d
func DockTypesFor(d Direction) []DockType {
	return []DockType{ExactDockType(d), DockTypeUniversal}
}

// Facility is a logistics site (warehouse) owning docks
type Facility struct {
	ID   int64
	Name string
	// CapacityIn/CapacityOut cap simultaneous confirmed bookings of that
	// direction across all docks for one slot window. nil or 0 means no limit.
	CapacityIn  *int
	CapacityOut *int
}

// CeilingFor returns the directional ceiling for a slot on a dock of type t
// serving direction d. Zero means unlimited.
func (f *Facility) CeilingFor(t DockType, d Direction) int {
	var ceiling *int
	switch t {
	case DockTypeEntrance:
		ceiling = f.CapacityIn
	case DockTypeExit:
		ceiling = f.CapacityOut
	default:
		if d == DirectionOutbound {
			ceiling = f.CapacityOut
		} else {
			ceiling = f.CapacityIn
		}
	}
	if ceiling == nil || *ceiling < 0 {
		return 0
	}
	return *ceiling
}

// Dock is a loading/unloading gate of a facility
type Dock struct {
	ID         int64
	FacilityID int64
	Name       string
	DockType   DockType
	// Empty sets mean the dock is unrestricted
	ZoneIDs          []int64
	TransportTypeIDs []int64
}

// ServesZone reports whether the dock accepts the zone. Unknown zone is accepted.
func (d *Dock) ServesZone(zoneID *int64) bool {
	if zoneID == nil || len(d.ZoneIDs) == 0 {
		return true
	}
	return slices.Contains(d.ZoneIDs, *zoneID)
}

// ServesTransportType reports whether the dock accepts the transport type.
// Unknown transport type is accepted.
func (d *Dock) ServesTransportType(transportTypeID *int64) bool {
	if transportTypeID == nil || len(d.TransportTypeIDs) == 0 {
		return true
	}
	return slices.Contains(d.TransportTypeIDs, *transportTypeID)
}
