package get_quota_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	referenceRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/reference"
)

// UseCase отчет об остатках квот объекта
type UseCase struct {
	refRepo ReferenceRepository
	quota   QuotaReporter
	maxDays int
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(refRepo ReferenceRepository, quota QuotaReporter, maxDays int, logger Logger) *UseCase {
	return &UseCase{
		refRepo: refRepo,
		quota:   quota,
		maxDays: maxDays,
		logger:  logger,
	}
}

// Execute возвращает квоту, занятый и оставшийся объем по каждой дате периода
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.validate(req); err != nil {
		uc.logger.Warn("GetQuotaAvailability: validation failed: %v", err)
		return nil, err
	}

	if _, err := uc.refRepo.GetFacility(ctx, req.FacilityID); err != nil {
		if errors.Is(err, referenceRepo.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetQuotaAvailability: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: facility: %v", ErrInternal, err)
	}

	if _, err := uc.refRepo.GetTransportType(ctx, req.TransportTypeID); err != nil {
		if errors.Is(err, referenceRepo.ErrTransportTypeNotFound) {
			return nil, ErrTransportTypeNotFound
		}
		uc.logger.Error("GetQuotaAvailability: failed to get transport type id=%d: %v", req.TransportTypeID, err)
		return nil, fmt.Errorf("%w: transport type: %v", ErrInternal, err)
	}

	days, err := uc.quota.Availability(ctx, req.FacilityID, req.Direction, req.TransportTypeID, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		FacilityID:      req.FacilityID,
		TransportTypeID: req.TransportTypeID,
		Direction:       string(req.Direction),
		Days:            make([]DayReport, 0, len(days)),
	}
	for _, day := range days {
		resp.Days = append(resp.Days, DayReport{
			Date:             day.Date.Format(domain.DateFormat),
			QuotaID:          day.QuotaID,
			AllowOverbooking: day.AllowOverbooking,
			Total:            day.Total,
			Used:             day.Used,
			Remaining:        day.Remaining,
		})
	}

	uc.logger.Info("GetQuotaAvailability: facility=%d transport type=%d direction=%s %s..%s -> %d days",
		req.FacilityID, req.TransportTypeID, req.Direction,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), len(resp.Days))

	return resp, nil
}

func (uc *UseCase) validate(req *Request) error {
	if req.FacilityID <= 0 || req.TransportTypeID <= 0 {
		return fmt.Errorf("%w: facilityId and transportTypeId must be positive", ErrInvalidInput)
	}
	if req.Direction != domain.DirectionInbound && req.Direction != domain.DirectionOutbound {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidInput, req.Direction)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: from must not be after to", ErrInvalidInput)
	}

	days := int(req.To.Sub(req.From)/(24*time.Hour)) + 1
	if uc.maxDays > 0 && days > uc.maxDays {
		return fmt.Errorf("%w: %d days, max %d", ErrRangeTooLong, days, uc.maxDays)
	}
	return nil
}
