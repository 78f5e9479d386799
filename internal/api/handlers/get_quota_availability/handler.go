package get_quota_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	getQuotaAvailability "github.com/m04kA/SMC-DockBookingService/internal/usecase/get_quota_availability"
)

const (
	msgInvalidFacilityID      = "некорректный ID объекта"
	msgInvalidTransportTypeID = "некорректный transportTypeId"
	msgInvalidDate            = "некорректный формат from/to, ожидается YYYY-MM-DD"
	msgInvalidDirection       = "некорректное направление: ожидается in/out или inbound/outbound"
)

type Handler struct {
	useCase GetQuotaAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetQuotaAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities/{facilityId}/quota-availability
// Query params: transportTypeId, direction, from, to (все обязательны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	facilityID, err := handlers.PathInt64(r, "facilityId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	query := r.URL.Query()

	transportTypeID, err := strconv.ParseInt(query.Get("transportTypeId"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTransportTypeID)
		return
	}

	from, errFrom := time.Parse(domain.DateFormat, query.Get("from"))
	to, errTo := time.Parse(domain.DateFormat, query.Get("to"))
	if errFrom != nil || errTo != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	direction, err := domain.ParseDirection(query.Get("direction"))
	if err != nil {
		h.logger.Warn("GET /facilities/{id}/quota-availability - Invalid direction: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDirection)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getQuotaAvailability.Request{
		FacilityID:      facilityID,
		TransportTypeID: transportTypeID,
		Direction:       direction,
		From:            from,
		To:              to,
	})
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status == http.StatusInternalServerError {
			h.logger.Error("GET /facilities/{id}/quota-availability - Failed: facility_id=%d, error=%v", facilityID, err)
		} else {
			h.logger.Warn("GET /facilities/{id}/quota-availability - Rejected: facility_id=%d, error=%v", facilityID, err)
		}
		return
	}

	h.logger.Info("GET /facilities/{id}/quota-availability - facility_id=%d, days=%d", facilityID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
