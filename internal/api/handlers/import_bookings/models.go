package import_bookings

import (
	"fmt"

	createBookingHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/create_booking"
	createBooking "github.com/m04kA/SMC-DockBookingService/internal/usecase/create_booking"
	importBookings "github.com/m04kA/SMC-DockBookingService/internal/usecase/import_bookings"
)

// ImportRequest HTTP request model: строки в формате запроса создания бронирования
type ImportRequest struct {
	DryRun bool                                        `json:"dryRun"`
	Rows   []createBookingHandler.CreateBookingRequest `json:"rows"`
}

// ToUseCaseRequest конвертирует строки; ошибка формата содержит номер строки (с 1)
func (r *ImportRequest) ToUseCaseRequest(userID int64) (*importBookings.Request, error) {
	rows := make([]*createBooking.Request, 0, len(r.Rows))
	for i := range r.Rows {
		row, err := r.Rows[i].ToUseCaseRequest(userID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}

	return &importBookings.Request{
		UserID: userID,
		Rows:   rows,
		DryRun: r.DryRun,
	}, nil
}
