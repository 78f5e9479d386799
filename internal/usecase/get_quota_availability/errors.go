package get_quota_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_quota_availability: invalid input data: %w", domain.ErrValidation)

	// ErrRangeTooLong возвращается, если период длиннее допустимого
	ErrRangeTooLong = fmt.Errorf("get_quota_availability: date range is too long: %w", domain.ErrValidation)

	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = fmt.Errorf("get_quota_availability: facility not found: %w", domain.ErrNotFound)

	// ErrTransportTypeNotFound возвращается, когда тип перевозки не найден
	ErrTransportTypeNotFound = fmt.Errorf("get_quota_availability: transport type not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quota_availability: internal error")
)
