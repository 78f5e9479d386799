package duration

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

var (
	// ErrVehicleTypeNotFound возвращается, когда тип ТС для значения по умолчанию не найден
	ErrVehicleTypeNotFound = fmt.Errorf("duration: vehicle type not found: %w", domain.ErrNotFound)

	// ErrInvalidDuration возвращается, когда итоговая длительность не положительна
	ErrInvalidDuration = fmt.Errorf("duration: invalid duration: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("duration: internal error")
)
