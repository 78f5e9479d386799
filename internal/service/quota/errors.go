package quota

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

var (
	// ErrVolumeRequired возвращается, когда квота действует, а объём не указан
	ErrVolumeRequired = fmt.Errorf("quota: volume is required while a quota is in force: %w", domain.ErrValidation)

	// ErrQuotaExceeded возвращается, когда заявленный объём превышает остаток квоты
	ErrQuotaExceeded = fmt.Errorf("quota: volume quota exceeded: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("quota: internal error")
)

// RejectionError отказ по квоте с остатком и запрошенным объёмом
type RejectionError struct {
	QuotaID   int64
	Remaining float64
	Requested float64
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%v: quota %d remaining %.2f, requested %.2f", ErrQuotaExceeded, e.QuotaID, e.Remaining, e.Requested)
}

func (e *RejectionError) Unwrap() error {
	return ErrQuotaExceeded
}
