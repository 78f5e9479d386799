package import_bookings

import "github.com/m04kA/SMC-DockBookingService/internal/usecase/create_booking"

// Request пакет строк бронирований одного пользователя
type Request struct {
	UserID int64
	Rows   []*create_booking.Request
	DryRun bool // Только проверка, без создания
}

// RowResult результат обработки строки (Row с 1)
type RowResult struct {
	Row       int    `json:"row"`
	BookingID *int64 `json:"bookingId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Response отчет по пакету
type Response struct {
	Total     int         `json:"total"`
	Created   int         `json:"created"`
	Failed    int         `json:"failed"`
	Validated bool        `json:"validated"` // Все строки прошли проверку
	Rows      []RowResult `json:"rows"`
}
