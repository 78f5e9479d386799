package slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("slots: slot not found: %w", domain.ErrNotFound)

	// ErrSlotHasBookings возвращается, когда у слота есть подтвержденные бронирования
	ErrSlotHasBookings = fmt.Errorf("slots: slot has confirmed bookings: %w", domain.ErrInvalidState)

	// ErrSlotInUse возвращается при удалении слота, на который ссылаются бронирования
	ErrSlotInUse = fmt.Errorf("slots: slot is referenced by bookings: %w", domain.ErrInvalidState)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
