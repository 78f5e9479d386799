package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DockBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DockBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования дока"
	msgBookingNotFound  = "бронирование дока не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotOwner         = "бронирование оформлено другим пользователем"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Отдает бронирование вместе с доком и окном занятых слотов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, userID)
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgBookingNotFound)
		return
	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("GET /bookings/{id} - Not owner: booking_id=%d, user_id=%d", bookingID, userID)
		handlers.RespondForbidden(w, msgNotOwner)
		return
	default:
		if handlers.RespondDomainError(w, err) == http.StatusInternalServerError {
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
		}
		return
	}

	if booking.DockID != nil {
		h.logger.Info("GET /bookings/{id} - booking_id=%d, status=%s, dock_id=%d, window=%s %s-%s, slots=%d",
			bookingID, booking.Status, *booking.DockID, booking.Date, booking.StartTime, booking.EndTime, len(booking.Slots))
	} else {
		// У отмененного бронирования связей со слотами нет
		h.logger.Info("GET /bookings/{id} - booking_id=%d, status=%s, no slots", bookingID, booking.Status)
	}
	handlers.RespondJSON(w, http.StatusOK, booking)
}
