package import_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-DockBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-DockBookingService/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase ImportBookingsUseCase
	logger  Logger
}

func NewHandler(useCase ImportBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/import
// Если хотя бы одна строка не прошла проверку, ничего не создается и возвращается 422 с отчетом
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ImportRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/import - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings/import - Failed to parse rows: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status := handlers.RespondDomainError(w, err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /bookings/import - Import failed: user_id=%d, error=%v", userID, err)
		} else {
			h.logger.Warn("POST /bookings/import - Rejected: user_id=%d, error=%v", userID, err)
		}
		return
	}

	status := http.StatusOK
	switch {
	case !result.Validated:
		status = http.StatusUnprocessableEntity
	case result.Created > 0:
		status = http.StatusCreated
	}

	h.logger.Info("POST /bookings/import - user_id=%d, dry_run=%t, total=%d, created=%d, failed=%d",
		userID, req.DryRun, result.Total, result.Created, result.Failed)
	handlers.RespondJSON(w, status, result)
}
