package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	referenceRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/reference"
	slotRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DockBookingService/internal/service/docks"
	"github.com/m04kA/SMC-DockBookingService/internal/service/duration"
	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
	"github.com/m04kA/SMC-DockBookingService/internal/service/slotchain"
	"github.com/m04kA/SMC-DockBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// UseCase use case распределения бронирования по докам
type UseCase struct {
	bookingRepo  BookingRepository
	refRepo      ReferenceRepository
	slotRepo     SlotRepository
	durations    DurationResolver
	docks        DockSelector
	chains       ChainSearcher
	quota        QuotaAdmitter
	publisher    EventPublisher
	metrics      Metrics
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	refRepo ReferenceRepository,
	slotRepo SlotRepository,
	durations DurationResolver,
	docks DockSelector,
	chains ChainSearcher,
	quota QuotaAdmitter,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		refRepo:      refRepo,
		slotRepo:     slotRepo,
		durations:    durations,
		docks:        docks,
		chains:       chains,
		quota:        quota,
		publisher:    publisher,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute распределяет бронирование: длительность -> доки -> цепочка слотов -> квота -> фиксация
// Каждая попытка на доке выполняется в отдельной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%d, facility=%d, direction=%s, date=%s, time=%s, slot=%v",
		req.UserID, req.FacilityID, req.Direction, req.Date.Format(domain.DateFormat), req.StartTime, req.TimeSlotID)

	booking, tries, err := uc.execute(ctx, req)
	uc.metrics.ObserveAllocation(directionLabel(req.Direction), outcome(err), tries)
	if err != nil {
		return nil, err
	}

	// Событие только после коммита; ошибка публикации не откатывает бронирование
	if err := uc.publisher.BookingCreated(ctx, booking); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d on dock=%d with %d slots",
		booking.ID, booking.Slots[0].DockID, len(booking.Slots))
	return models.FromDomainBooking(booking), nil
}

// Plan результат проверки запроса без распределения
type Plan struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// plan проверенный запрос, готовый к поиску доков
type plan struct {
	Plan
	facility  *domain.Facility
	zoneID    *int64
	requested *domain.TimeSlot
}

// Check выполняет все проверки запроса до поиска доков: валидацию, справочники, дату и длительность
func (uc *UseCase) Check(ctx context.Context, req *Request) (*Plan, error) {
	p, err := uc.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return &p.Plan, nil
}

func (uc *UseCase) prepare(ctx context.Context, req *Request) (*plan, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Справочники
	facility, zoneID, err := uc.loadReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	p := &plan{
		Plan:     Plan{Date: req.Date, StartTime: req.StartTime},
		facility: facility,
		zoneID:   zoneID,
	}

	// 3. Стартовый слот задает дату и время
	if req.TimeSlotID != nil {
		p.requested, err = uc.loadRequestedSlot(ctx, facility, *req.TimeSlotID)
		if err != nil {
			return nil, err
		}
		p.Date, p.StartTime = p.requested.Date, p.requested.StartTime
	}

	if err := validateDate(p.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Длительность ПРР
	p.DurationMinutes, err = uc.durations.Resolve(ctx, duration.Query{
		FacilityID:      facility.ID,
		SupplierID:      req.SupplierID,
		TransportTypeID: req.TransportTypeID,
		VehicleTypeID:   &req.VehicleTypeID,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to resolve duration: %v", err)
		return nil, err
	}

	return p, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, int, error) {
	p, err := uc.prepare(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	facility, zoneID, requested := p.facility, p.zoneID, p.requested
	date, start, minutes := p.Date, p.StartTime, p.DurationMinutes

	template := newBooking(req, zoneID)
	query := docks.Query{
		FacilityID:      facility.ID,
		Direction:       req.Direction,
		ZoneID:          zoneID,
		TransportTypeID: req.TransportTypeID,
	}
	tries := 0
	var lastErr error
	var triedDockID int64

	// 5. Фаза 1: только док запрошенного слота
	if requested != nil {
		dock, err := uc.refRepo.GetDock(ctx, requested.DockID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get dock id=%d: %v", requested.DockID, err)
			return nil, 0, fmt.Errorf("%w: failed to get dock: %v", ErrInternal, err)
		}

		if len(docks.Filter([]*domain.Dock{dock}, query, true)) == 0 {
			uc.logger.Warn("CreateBooking: requested slot id=%d is on ineligible dock=%d (%s)",
				requested.ID, dock.ID, dock.DockType)
		} else {
			tries++
			triedDockID = dock.ID
			booking, err := uc.attempt(ctx, facility, dock, date, start, minutes, template)
			if err == nil {
				return booking, tries, nil
			}
			if !nextCandidate(err) {
				return nil, tries, err
			}
			uc.logger.Warn("CreateBooking: requested slot id=%d failed: %v, falling back to full search", requested.ID, err)
			lastErr = err
		}
	}

	// 6. Фаза 2: полный поиск по упорядоченным докам
	candidates, err := uc.docks.Candidates(ctx, query)
	if err != nil {
		return nil, tries, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if len(candidates) == 0 {
		uc.logger.Warn("CreateBooking: facility=%d has no eligible docks for direction=%s", facility.ID, req.Direction)
		return nil, tries, ErrNoEligibleDock
	}

	for _, dock := range candidates {
		// Док запрошенного слота уже опробован с теми же датой и временем
		if dock.ID == triedDockID {
			continue
		}

		tries++
		booking, err := uc.attempt(ctx, facility, dock, date, start, minutes, template)
		if err == nil {
			return booking, tries, nil
		}
		if !nextCandidate(err) {
			return nil, tries, err
		}

		uc.logger.Info("CreateBooking: dock=%d rejected: %v", dock.ID, err)
		lastErr = err
	}

	uc.logger.Warn("CreateBooking: no chain on %d docks, last: %v", tries, lastErr)
	return nil, tries, fmt.Errorf("%w: tried %d docks, last: %v", ErrNoAvailableChain, tries, lastErr)
}

// attempt одна попытка на доке: цепочка, квота и запись в одной транзакции
func (uc *UseCase) attempt(
	ctx context.Context,
	facility *domain.Facility,
	dock *domain.Dock,
	date time.Time,
	start types.TimeString,
	minutes int,
	template domain.Booking,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		chain, err := uc.chains.Search(txCtx, slotchain.Request{
			Facility:        facility,
			Dock:            dock,
			Direction:       template.Direction,
			Date:            date,
			Start:           start,
			RequiredMinutes: minutes,
		})
		if err != nil {
			return err
		}

		if _, err := uc.quota.Admit(txCtx, quota.Query{
			FacilityID:      facility.ID,
			Direction:       template.Direction,
			TransportTypeID: template.TransportTypeID,
			Date:            date,
			Volume:          template.Cubes,
		}); err != nil {
			uc.metrics.ObserveQuotaRejection(directionLabel(template.Direction), quotaReason(err))
			return err
		}

		booking := template
		created, err := uc.bookingRepo.Create(txCtx, &booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		if err := uc.bookingRepo.CreateLinks(txCtx, created.ID, chain.SlotIDs()); err != nil {
			uc.logger.Error("CreateBooking: failed to link slots to booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to link slots: %w", ErrInternal, err)
		}

		created.Slots = chain.Slots
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// loadReferences проверяет ссылки запроса на справочники
// Зона берется у поставщика
func (uc *UseCase) loadReferences(ctx context.Context, req *Request) (*domain.Facility, *int64, error) {
	facility, err := uc.refRepo.GetFacility(ctx, req.FacilityID)
	if err != nil {
		return nil, nil, uc.referenceError("facility", req.FacilityID, err, referenceRepo.ErrFacilityNotFound, ErrFacilityNotFound)
	}

	if _, err := uc.refRepo.GetVehicleType(ctx, req.VehicleTypeID); err != nil {
		return nil, nil, uc.referenceError("vehicle type", req.VehicleTypeID, err, referenceRepo.ErrVehicleTypeNotFound, ErrVehicleTypeNotFound)
	}

	var zoneID *int64
	if req.SupplierID != nil {
		supplier, err := uc.refRepo.GetSupplier(ctx, *req.SupplierID)
		if err != nil {
			return nil, nil, uc.referenceError("supplier", *req.SupplierID, err, referenceRepo.ErrSupplierNotFound, ErrSupplierNotFound)
		}
		zoneID = supplier.ZoneID
	}

	if req.TransportTypeID != nil {
		if _, err := uc.refRepo.GetTransportType(ctx, *req.TransportTypeID); err != nil {
			return nil, nil, uc.referenceError("transport type", *req.TransportTypeID, err, referenceRepo.ErrTransportTypeNotFound, ErrTransportTypeNotFound)
		}
	}

	return facility, zoneID, nil
}

// loadRequestedSlot загружает стартовый слот и проверяет, что он на доке этого объекта
func (uc *UseCase) loadRequestedSlot(ctx context.Context, facility *domain.Facility, slotID int64) (*domain.TimeSlot, error) {
	slot, err := uc.slotRepo.GetByID(ctx, slotID)
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		uc.logger.Warn("CreateBooking: time slot id=%d not found", slotID)
		return nil, ErrSlotNotFound
	}
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get time slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: failed to get time slot: %v", ErrInternal, err)
	}

	dock, err := uc.refRepo.GetDock(ctx, slot.DockID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get dock id=%d: %v", slot.DockID, err)
		return nil, fmt.Errorf("%w: failed to get dock: %v", ErrInternal, err)
	}
	if dock.FacilityID != facility.ID {
		uc.logger.Warn("CreateBooking: slot id=%d is on dock=%d of facility=%d", slotID, dock.ID, dock.FacilityID)
		return nil, ErrSlotNotInFacility
	}

	return slot, nil
}

func (uc *UseCase) referenceError(name string, id int64, err, notFound, sentinel error) error {
	if errors.Is(err, notFound) {
		uc.logger.Warn("CreateBooking: %s id=%d not found", name, id)
		return sentinel
	}
	uc.logger.Error("CreateBooking: failed to get %s id=%d: %v", name, id, err)
	return fmt.Errorf("%w: failed to get %s: %v", ErrInternal, name, err)
}

func newBooking(req *Request, zoneID *int64) domain.Booking {
	return domain.Booking{
		UserID:          req.UserID,
		FacilityID:      req.FacilityID,
		Direction:       req.Direction,
		VehicleTypeID:   req.VehicleTypeID,
		SupplierID:      req.SupplierID,
		ZoneID:          zoneID,
		TransportTypeID: req.TransportTypeID,
		Cubes:           req.Cubes,
		Status:          domain.StatusConfirmed,
		VehiclePlate:    strings.TrimSpace(req.VehiclePlate),
		DriverFullName:  strings.TrimSpace(req.DriverFullName),
		DriverPhone:     strings.TrimSpace(req.DriverPhone),
		TransportSheet:  req.TransportSheet,
	}
}

// nextCandidate сообщает, можно ли перейти к следующему доку
// Отказ по квоте не зависит от дока и завершает распределение
func nextCandidate(err error) bool {
	return errors.Is(err, slotchain.ErrNoChain) || txmanager.IsSerializationFailure(err)
}

func quotaReason(err error) string {
	if errors.Is(err, quota.ErrVolumeRequired) {
		return "volume_required"
	}
	if errors.Is(err, quota.ErrQuotaExceeded) {
		return "exceeded"
	}
	return "error"
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeCreated
	case errors.Is(err, quota.ErrQuotaExceeded), errors.Is(err, quota.ErrVolumeRequired):
		return OutcomeQuota
	case errors.Is(err, domain.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

func directionLabel(d domain.Direction) string {
	if d == domain.DirectionInbound || d == domain.DirectionOutbound {
		return string(d)
	}
	return "unknown"
}
