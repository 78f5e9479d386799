package update_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DockBookingService/internal/api/handlers"
	createBookingHandler "github.com/m04kA/SMC-DockBookingService/internal/api/handlers/create_booking"
	"github.com/m04kA/SMC-DockBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgQuotaExceeded      = "увеличение объема превышает квоту"
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

// Handle PATCH /api/v1/bookings/{bookingId}
// Меняет объем и данные транспортного листа подтвержденного бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	booking, err := h.service.UpdateDetails(r.Context(), bookingID, &req)
	if err != nil {
		var rejection *quota.RejectionError
		if errors.As(err, &rejection) {
			h.logger.Warn("PATCH /bookings/{id} - Quota exceeded: booking_id=%d: %v", bookingID, err)
			handlers.RespondJSON(w, http.StatusConflict, createBookingHandler.QuotaRejectionResponse{
				Code:      http.StatusConflict,
				Message:   msgQuotaExceeded,
				QuotaID:   rejection.QuotaID,
				Remaining: rejection.Remaining,
				Requested: rejection.Requested,
			})
			return
		}

		status := handlers.RespondDomainError(w, err)
		if status == http.StatusInternalServerError {
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
		} else {
			h.logger.Warn("PATCH /bookings/{id} - Rejected: booking_id=%d, error=%v", bookingID, err)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
