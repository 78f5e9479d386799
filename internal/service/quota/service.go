package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	quotaRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/quota"
)

// Query параметры проверки объёма
type Query struct {
	FacilityID      int64
	Direction       domain.Direction
	TransportTypeID *int64
	Date            time.Time
	Volume          *float64
}

// Decision результат допуска по квоте
// Quota == nil означает, что квота на дату не действует
type Decision struct {
	Quota     *domain.VolumeQuota
	Ceiling   float64
	Used      float64
	Remaining float64
}

// Service контроль объёма бронирований по квотам
type Service struct {
	quotaRepo QuotaRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса квот
func NewService(quotaRepo QuotaRepository, logger Logger) *Service {
	return &Service{
		quotaRepo: quotaRepo,
		logger:    logger,
	}
}

// Admit проверяет, что заявленный объём помещается в квоту на дату
func (s *Service) Admit(ctx context.Context, q Query) (*Decision, error) {
	return s.admit(ctx, q, 0)
}

// admit pending - объём еще не сохраненных строк того же пакета
func (s *Service) admit(ctx context.Context, q Query, pending float64) (*Decision, error) {
	// Квоты привязаны к типу перевозки
	if q.TransportTypeID == nil {
		return &Decision{}, nil
	}

	quota, err := s.quotaRepo.FindForDate(ctx, q.FacilityID, q.Direction, *q.TransportTypeID, q.Date)
	if errors.Is(err, quotaRepo.ErrQuotaNotFound) {
		return &Decision{}, nil
	}
	if err != nil {
		s.logger.Error("AdmitVolume: failed to find quota facility=%d: %v", q.FacilityID, err)
		return nil, fmt.Errorf("%w: find quota: %w", ErrInternal, err)
	}

	if q.Volume == nil {
		return nil, fmt.Errorf("%w: quota %d", ErrVolumeRequired, quota.ID)
	}

	used, err := s.quotaRepo.UsedVolume(ctx, q.FacilityID, q.Direction, *q.TransportTypeID, q.Date)
	if err != nil {
		s.logger.Error("AdmitVolume: failed to get used volume quota=%d: %v", quota.ID, err)
		return nil, fmt.Errorf("%w: used volume: %w", ErrInternal, err)
	}

	ceiling := quota.EffectiveVolume(q.Date)
	decision := &Decision{
		Quota:     quota,
		Ceiling:   ceiling,
		Used:      used + pending,
		Remaining: ceiling - used - pending,
	}

	if quota.AllowOverbooking {
		return decision, nil
	}

	if *q.Volume > decision.Remaining {
		s.logger.Warn("AdmitVolume: quota=%d date=%s rejected: requested %.2f, remaining %.2f",
			quota.ID, q.Date.Format(domain.DateFormat), *q.Volume, decision.Remaining)
		return nil, &RejectionError{
			QuotaID:   quota.ID,
			Remaining: decision.Remaining,
			Requested: *q.Volume,
		}
	}

	return decision, nil
}
