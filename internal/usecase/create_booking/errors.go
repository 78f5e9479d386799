package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = fmt.Errorf("create_booking: booking date is in the past: %w", domain.ErrValidation)

	// ErrFacilityNotFound возвращается, когда объект не найден
	ErrFacilityNotFound = fmt.Errorf("create_booking: unknown facility: %w", domain.ErrValidation)

	// ErrVehicleTypeNotFound возвращается, когда тип ТС не найден
	ErrVehicleTypeNotFound = fmt.Errorf("create_booking: unknown vehicle type: %w", domain.ErrValidation)

	// ErrSupplierNotFound возвращается, когда поставщик не найден
	ErrSupplierNotFound = fmt.Errorf("create_booking: unknown supplier: %w", domain.ErrValidation)

	// ErrTransportTypeNotFound возвращается, когда тип перевозки не найден
	ErrTransportTypeNotFound = fmt.Errorf("create_booking: unknown transport type: %w", domain.ErrValidation)

	// ErrSlotNotFound возвращается, когда запрошенный стартовый слот не найден
	ErrSlotNotFound = fmt.Errorf("create_booking: time slot not found: %w", domain.ErrNotFound)

	// ErrSlotNotInFacility возвращается, когда стартовый слот принадлежит доку другого объекта
	ErrSlotNotInFacility = fmt.Errorf("create_booking: time slot belongs to another facility: %w", domain.ErrValidation)

	// ErrNoEligibleDock возвращается, когда на объекте нет доков для направления
	ErrNoEligibleDock = fmt.Errorf("create_booking: no eligible dock: %w", domain.ErrConflict)

	// ErrNoAvailableChain возвращается, когда ни на одном доке не нашлось цепочки слотов
	ErrNoAvailableChain = fmt.Errorf("create_booking: no available slot chain: %w", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
