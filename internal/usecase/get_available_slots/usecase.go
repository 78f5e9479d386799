package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	referenceRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/reference"
	"github.com/m04kA/SMC-DockBookingService/internal/service/docks"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// dayStart начало суток для выборки всех слотов даты
const dayStart types.TimeString = "00:00"

// UseCase use case для получения свободных слотов объекта
type UseCase struct {
	refRepo      ReferenceRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(refRepo ReferenceRepository, slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		refRepo:      refRepo,
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает слоты со свободными местами на доках, совместимых с направлением
// Доки упорядочены так же, как при распределении
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, facility=%d, direction=%s, date=%s",
		req.UserID, req.FacilityID, req.Direction, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Объект
	if _, err := uc.refRepo.GetFacility(ctx, req.FacilityID); err != nil {
		if errors.Is(err, referenceRepo.ErrFacilityNotFound) {
			uc.logger.Warn("GetAvailableSlots: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to get facility: %v", ErrInternal, err)
	}

	// 3. Доки, совместимые с направлением
	all, err := uc.refRepo.ListDocks(ctx, req.FacilityID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list docks: %v", err)
		return nil, fmt.Errorf("%w: failed to list docks: %v", ErrInternal, err)
	}

	query := docks.Query{FacilityID: req.FacilityID, Direction: req.Direction}
	candidates := docks.Filter(all, query, false)
	docks.Rank(candidates, req.Direction)

	// 4. Слоты и занятость по каждому доку
	resp := &Response{
		Date:       req.Date,
		FacilityID: req.FacilityID,
		Direction:  req.Direction,
		Docks:      make([]Dock, 0, len(candidates)),
	}

	total := 0
	for _, dock := range candidates {
		slots, err := uc.slotRepo.ListAvailableFrom(ctx, dock.ID, req.Date, dayStart)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list slots of dock=%d: %v", dock.ID, err)
			return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		occupancy, err := uc.slotRepo.CountOccupancy(ctx, slotIDs(slots))
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to count occupancy of dock=%d: %v", dock.ID, err)
			return nil, fmt.Errorf("%w: failed to count occupancy: %v", ErrInternal, err)
		}

		free := calculateAvailableSpots(slots, occupancy)
		total += len(free)
		resp.Docks = append(resp.Docks, Dock{
			ID:       dock.ID,
			Name:     dock.Name,
			DockType: dock.DockType,
			Slots:    free,
		})
	}

	uc.logger.Info("GetAvailableSlots: facility=%d date=%s -> %d docks, %d free slots",
		req.FacilityID, req.Date.Format(domain.DateFormat), len(resp.Docks), total)

	return resp, nil
}
