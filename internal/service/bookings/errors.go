package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("bookings: booking not found: %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = fmt.Errorf("bookings: access denied: %w", domain.ErrForbidden)

	// ErrCannotCancel возвращается, когда бронирование не в статусе confirmed
	ErrCannotCancel = fmt.Errorf("bookings: booking cannot be cancelled: %w", domain.ErrInvalidState)

	// ErrCannotUpdate возвращается, когда бронирование нельзя редактировать
	ErrCannotUpdate = fmt.Errorf("bookings: booking cannot be updated: %w", domain.ErrInvalidState)

	// ErrCannotDelete возвращается при попытке удалить подтвержденное бронирование
	ErrCannotDelete = fmt.Errorf("bookings: confirmed booking cannot be deleted: %w", domain.ErrInvalidState)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
