package import_bookings

import (
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

var (
	// ErrEmptyBatch возвращается, когда в пакете нет строк
	ErrEmptyBatch = fmt.Errorf("import_bookings: batch is empty: %w", domain.ErrValidation)

	// ErrBatchTooLarge возвращается, когда строк больше допустимого
	ErrBatchTooLarge = fmt.Errorf("import_bookings: batch is too large: %w", domain.ErrValidation)
)
