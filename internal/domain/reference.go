package domain

// VehicleType carries the intrinsic handling duration used when no duration rule matches
type VehicleType struct {
	ID              int64
	Name            string
	DurationMinutes int
}

// Supplier may be bound to a zone, which narrows the set of eligible docks
type Supplier struct {
	ID     int64
	Name   string
	ZoneID *int64
}

// TransportType is a cargo category (e.g. dry, frozen)
type TransportType struct {
	ID   int64
	Name string
}
