package slotchain

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// Continuity режим непрерывности цепочки
type Continuity int

const (
	// GapTolerant слоты берутся подряд по времени начала, разрывы допустимы
	GapTolerant Continuity = iota
	// Strict начало каждого слота должно совпадать с концом предыдущего
	Strict
)

// Request параметры поиска цепочки на одном доке
type Request struct {
	Facility        *domain.Facility
	Dock            *domain.Dock
	Direction       domain.Direction
	Date            time.Time
	Start           types.TimeString
	RequiredMinutes int
}

// Chain найденная цепочка слотов
type Chain struct {
	Dock         *domain.Dock
	Slots        []*domain.TimeSlot
	TotalMinutes int
}

// SlotIDs возвращает ID слотов цепочки по порядку
func (c *Chain) SlotIDs() []int64 {
	ids := make([]int64, len(c.Slots))
	for i, s := range c.Slots {
		ids[i] = s.ID
	}
	return ids
}

// Service ищет цепочку смежных слотов на доке
// Должен вызываться внутри транзакции: занятость считается заново,
// блокируются только слоты найденной цепочки
type Service struct {
	slotRepo   SlotRepository
	continuity Continuity
	logger     Logger
}

// NewService создает новый экземпляр сервиса поиска цепочки
func NewService(slotRepo SlotRepository, continuity Continuity, logger Logger) *Service {
	return &Service{
		slotRepo:   slotRepo,
		continuity: continuity,
		logger:     logger,
	}
}

// Search собирает цепочку, начинающуюся ровно в req.Start
// Любой неподходящий слот прерывает попытку на этом доке (ошибка оборачивает ErrNoChain)
func (s *Service) Search(ctx context.Context, req Request) (*Chain, error) {
	// 1. Доступные слоты дока на дату, начиная с запрошенного времени
	slots, err := s.slotRepo.ListAvailableFrom(ctx, req.Dock.ID, req.Date, req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: list slots of dock %d: %w", ErrInternal, req.Dock.ID, err)
	}

	// 2. Первый слот обязан начинаться ровно в запрошенное время
	if len(slots) == 0 || !slots[0].StartTime.Equal(req.Start) {
		return nil, ErrNoStartSlot
	}

	// 3. Занятость считается одним запросом по всем кандидатам
	ids := make([]int64, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ID
	}
	occupancy, err := s.slotRepo.CountOccupancy(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: count occupancy: %w", ErrInternal, err)
	}

	ceiling := req.Facility.CeilingFor(req.Dock.DockType, req.Direction)

	// 4. Идем вперед, пока не наберем длительность
	chain := &Chain{Dock: req.Dock}
	for i, slot := range slots {
		if s.continuity == Strict && i > 0 && !slot.StartTime.Equal(slots[i-1].EndTime) {
			return nil, fmt.Errorf("%w: gap between %s and %s", ErrChainBroken, slots[i-1].EndTime, slot.StartTime)
		}

		if occupancy[slot.ID] >= slot.Capacity {
			return nil, fmt.Errorf("%w: slot %d (%s) %d/%d", ErrSlotFull, slot.ID, slot.StartTime, occupancy[slot.ID], slot.Capacity)
		}

		if ceiling > 0 {
			count, err := s.slotRepo.CountDirectional(ctx, req.Facility.ID, req.Direction,
				domain.DockTypesFor(req.Direction), slot.Date, slot.StartTime, slot.EndTime)
			if err != nil {
				return nil, fmt.Errorf("%w: count directional: %w", ErrInternal, err)
			}
			if count >= ceiling {
				return nil, fmt.Errorf("%w: window %s-%s %d/%d", ErrFacilityCeiling, slot.StartTime, slot.EndTime, count, ceiling)
			}
		}

		chain.Slots = append(chain.Slots, slot)
		chain.TotalMinutes += slot.DurationMinutes()

		if chain.TotalMinutes >= req.RequiredMinutes {
			if err := s.lock(ctx, chain); err != nil {
				return nil, err
			}
			s.logger.Info("SlotChain: dock=%d date=%s start=%s -> %d slots, %d min",
				req.Dock.ID, req.Date.Format(domain.DateFormat), req.Start, len(chain.Slots), chain.TotalMinutes)
			return chain, nil
		}
	}

	// 5. Слоты закончились раньше
	return nil, fmt.Errorf("%w: collected %d of %d min", ErrNotEnoughSlots, chain.TotalMinutes, req.RequiredMinutes)
}

// lock блокирует строки слотов цепочки до конца транзакции
func (s *Service) lock(ctx context.Context, chain *Chain) error {
	ids := chain.SlotIDs()
	locked, err := s.slotRepo.LockSlots(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: lock chain: %w", ErrInternal, err)
	}
	if locked != len(ids) {
		return fmt.Errorf("%w: locked %d of %d", ErrSlotGone, locked, len(ids))
	}
	return nil
}
