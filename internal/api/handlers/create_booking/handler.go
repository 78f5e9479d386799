package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DockBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DockBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
	createBooking "github.com/m04kA/SMC-DockBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgInvalidDirection   = "некорректное направление: ожидается in/out или inbound/outbound"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNoEligibleDock     = "на объекте нет доков, подходящих для бронирования"
	msgNoAvailableChain   = "нет свободных слотов на требуемую длительность"
	msgQuotaExceeded      = "превышена квота объема на выбранную дату"
	msgVolumeRequired     = "для этой даты действует квота: укажите объем"
	msgSlotNotFound       = "временной слот не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, domain.ErrValidation) {
			handlers.RespondBadRequest(w, msgInvalidDirection)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDateTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var rejection *quota.RejectionError
		switch {
		case errors.As(err, &rejection):
			h.logger.Warn("POST /bookings - Quota exceeded: user_id=%d, facility_id=%d, quota_id=%d",
				userID, req.FacilityID, rejection.QuotaID)
			handlers.RespondJSON(w, http.StatusConflict, QuotaRejectionResponse{
				Code:      http.StatusConflict,
				Message:   msgQuotaExceeded,
				QuotaID:   rejection.QuotaID,
				Remaining: rejection.Remaining,
				Requested: rejection.Requested,
			})

		case errors.Is(err, quota.ErrVolumeRequired):
			h.logger.Warn("POST /bookings - Volume required: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondBadRequest(w, msgVolumeRequired)

		case errors.Is(err, createBooking.ErrNoEligibleDock):
			h.logger.Warn("POST /bookings - No eligible dock: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondConflict(w, msgNoEligibleDock)

		case errors.Is(err, createBooking.ErrNoAvailableChain):
			h.logger.Warn("POST /bookings - No available chain: user_id=%d, facility_id=%d", userID, req.FacilityID)
			handlers.RespondConflict(w, msgNoAvailableChain)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: user_id=%d, slot_id=%v", userID, req.TimeSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			status := handlers.RespondDomainError(w, err)
			if status == http.StatusInternalServerError {
				h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, facility_id=%d, error=%v",
					userID, req.FacilityID, err)
			} else {
				h.logger.Warn("POST /bookings - Rejected: user_id=%d, facility_id=%d, error=%v",
					userID, req.FacilityID, err)
			}
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, facility_id=%d",
		result.ID, userID, req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
