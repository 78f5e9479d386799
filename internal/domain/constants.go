package domain

// Business validation constants
const (
	DurationStepMinutes     = 30
	MaxVehiclePlateLength   = 20
	MaxDriverNameLength     = 200
	MaxDriverPhoneLength    = 32
	MaxTransportSheetLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, занимающих слоты
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
}
