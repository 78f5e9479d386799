package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/slot"
)

// Service управление доступностью слотов
type Service struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// SetAvailability включает или выключает слот
// Запрещено, пока на слоте есть подтвержденные бронирования
func (s *Service) SetAvailability(ctx context.Context, slotID int64, available bool) (*domain.TimeSlot, error) {
	s.logger.Info("SetAvailability: slot id=%d available=%t", slotID, available)

	var slot *domain.TimeSlot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		slot, err = s.slotRepo.GetByID(txCtx, slotID)
		if err != nil {
			return s.repoError("SetAvailability", slotID, err)
		}

		if slot.IsAvailable == available {
			return nil
		}

		confirmed, err := s.slotRepo.CountLinks(txCtx, slotID, true)
		if err != nil {
			return s.repoError("SetAvailability", slotID, err)
		}
		if confirmed > 0 {
			s.logger.Warn("SetAvailability: slot id=%d has %d confirmed bookings", slotID, confirmed)
			return fmt.Errorf("%w: %d", ErrSlotHasBookings, confirmed)
		}

		if err := s.slotRepo.SetAvailability(txCtx, slotID, available); err != nil {
			return s.repoError("SetAvailability", slotID, err)
		}

		slot.IsAvailable = available
		return nil
	})
	if err != nil {
		return nil, err
	}

	return slot, nil
}

// Delete удаляет слот, если на него не ссылается ни одно бронирование
func (s *Service) Delete(ctx context.Context, slotID int64) error {
	s.logger.Info("DeleteSlot: slot id=%d", slotID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.GetByID(txCtx, slotID); err != nil {
			return s.repoError("DeleteSlot", slotID, err)
		}

		links, err := s.slotRepo.CountLinks(txCtx, slotID, false)
		if err != nil {
			return s.repoError("DeleteSlot", slotID, err)
		}
		if links > 0 {
			s.logger.Warn("DeleteSlot: slot id=%d is referenced by %d bookings", slotID, links)
			return fmt.Errorf("%w: %d", ErrSlotInUse, links)
		}

		if err := s.slotRepo.Delete(txCtx, slotID); err != nil {
			return s.repoError("DeleteSlot", slotID, err)
		}
		return nil
	})
}

func (s *Service) repoError(op string, slotID int64, err error) error {
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		s.logger.Warn("%s: slot id=%d not found", op, slotID)
		return ErrSlotNotFound
	}
	s.logger.Error("%s: repository error for slot id=%d: %v", op, slotID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
