package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	quota       QuotaAdmitter
	publisher   EventPublisher
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	quota QuotaAdmitter,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		quota:       quota,
		publisher:   publisher,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getOwned(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя
// Опционально фильтрует по статусу и периоду
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status for user=%d", req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUser(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет подтвержденное бронирование
// Статус и удаление связей со слотами выполняются в одной транзакции
// Повторная отмена возвращает ErrCannotCancel
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, userID)

	var cancelled *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getOwned(txCtx, "Cancel", bookingID, userID)
		if err != nil {
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusCancelled); err != nil {
			return s.repoError("Cancel", bookingID, err)
		}

		released, err := s.bookingRepo.DeleteLinks(txCtx, bookingID)
		if err != nil {
			return s.repoError("Cancel", bookingID, err)
		}

		s.logger.Info("Cancel: booking id=%d released %d slots", bookingID, released)
		booking.Status = domain.StatusCancelled
		cancelled = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Событие только после коммита; ошибка публикации не откатывает отмену
	if err := s.publisher.BookingCancelled(ctx, cancelled); err != nil {
		s.logger.Warn("Cancel: failed to publish event for booking id=%d: %v", bookingID, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(cancelled), nil
}

// UpdateDetails изменяет объём и данные транспортного листа подтвержденного бронирования
// Увеличение объёма повторно проверяется по квоте в serializable транзакции
func (s *Service) UpdateDetails(ctx context.Context, bookingID int64, req *models.UpdateDetailsRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateDetails: updating booking id=%d by user=%d", bookingID, req.UserID)

	if err := validateDetails(req); err != nil {
		s.logger.Warn("UpdateDetails: validation failed for booking id=%d: %v", bookingID, err)
		return nil, err
	}

	var updated *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getOwned(txCtx, "UpdateDetails", bookingID, req.UserID)
		if err != nil {
			return err
		}

		if !booking.CanBeUpdated() {
			s.logger.Warn("UpdateDetails: booking id=%d cannot be updated, status=%s", bookingID, booking.Status)
			return ErrCannotUpdate
		}

		if req.Cubes != nil && *req.Cubes > booking.Volume() {
			if err := s.admitIncrease(txCtx, booking, *req.Cubes); err != nil {
				return err
			}
		}

		applyDetails(booking, req)

		if err := s.bookingRepo.UpdateDetails(txCtx, booking); err != nil {
			return s.repoError("UpdateDetails", bookingID, err)
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateDetails: successfully updated booking id=%d", bookingID)
	return models.FromDomainBooking(updated), nil
}

// Delete физически удаляет неподтвержденное бронирование вместе с оставшимися связями
func (s *Service) Delete(ctx context.Context, bookingID int64, userID int64) error {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", bookingID, userID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getOwned(txCtx, "Delete", bookingID, userID)
		if err != nil {
			return err
		}

		if !booking.CanBeDeleted() {
			s.logger.Warn("Delete: booking id=%d is %s", bookingID, booking.Status)
			return ErrCannotDelete
		}

		if _, err := s.bookingRepo.DeleteLinks(txCtx, bookingID); err != nil {
			return s.repoError("Delete", bookingID, err)
		}

		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			return s.repoError("Delete", bookingID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// getOwned загружает бронирование и проверяет, что оно принадлежит пользователю
func (s *Service) getOwned(ctx context.Context, op string, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.repoError(op, bookingID, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, userID, bookingID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// admitIncrease проверяет по квоте только прирост объёма
// Текущий объём бронирования уже учтен в занятом
func (s *Service) admitIncrease(ctx context.Context, booking *domain.Booking, cubes float64) error {
	_, date, _, _, ok := booking.Span()
	if !ok {
		return nil
	}

	delta := cubes - booking.Volume()
	_, err := s.quota.Admit(ctx, quota.Query{
		FacilityID:      booking.FacilityID,
		Direction:       booking.Direction,
		TransportTypeID: booking.TransportTypeID,
		Date:            date,
		Volume:          &delta,
	})
	if err != nil {
		s.logger.Warn("UpdateDetails: volume increase rejected for booking id=%d: %v", booking.ID, err)
		return err
	}
	return nil
}

func (s *Service) repoError(op string, bookingID int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, bookingID)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateDetails(req *models.UpdateDetailsRequest) error {
	if req.Cubes != nil && *req.Cubes < 0 {
		return fmt.Errorf("%w: cubes must not be negative", ErrInvalidInput)
	}

	limits := []struct {
		name  string
		value *string
		max   int
	}{
		{"vehiclePlate", req.VehiclePlate, domain.MaxVehiclePlateLength},
		{"driverFullName", req.DriverFullName, domain.MaxDriverNameLength},
		{"driverPhone", req.DriverPhone, domain.MaxDriverPhoneLength},
		{"transportSheet", req.TransportSheet, domain.MaxTransportSheetLength},
	}
	for _, l := range limits {
		if l.value != nil && utf8.RuneCountInString(*l.value) > l.max {
			return fmt.Errorf("%w: %s longer than %d characters", ErrInvalidInput, l.name, l.max)
		}
	}

	return nil
}

func applyDetails(b *domain.Booking, req *models.UpdateDetailsRequest) {
	if req.Cubes != nil {
		cubes := *req.Cubes
		b.Cubes = &cubes
	}
	if req.VehiclePlate != nil {
		b.VehiclePlate = strings.TrimSpace(*req.VehiclePlate)
	}
	if req.DriverFullName != nil {
		b.DriverFullName = strings.TrimSpace(*req.DriverFullName)
	}
	if req.DriverPhone != nil {
		b.DriverPhone = strings.TrimSpace(*req.DriverPhone)
	}
	if req.TransportSheet != nil {
		sheet := strings.TrimSpace(*req.TransportSheet)
		b.TransportSheet = &sheet
	}
}
