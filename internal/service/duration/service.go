package duration

import (
	"context"
	"errors"
	"fmt"

	ruleRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/durationrule"
	referenceRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/reference"
)

// Query входные данные для определения длительности ПРР
type Query struct {
	FacilityID      int64
	SupplierID      *int64
	TransportTypeID *int64
	VehicleTypeID   *int64
}

// level один уровень каскада: какие компоненты ключа участвуют в поиске
type level struct {
	name          string
	supplier      bool
	transportType bool
	vehicleType   bool
}

// levels от самого специфичного к самому общему; первое совпадение побеждает
var levels = []level{
	{name: "supplier+transport+vehicle", supplier: true, transportType: true, vehicleType: true},
	{name: "supplier+transport", supplier: true, transportType: true},
	{name: "supplier+vehicle", supplier: true, vehicleType: true},
	{name: "transport+vehicle", transportType: true, vehicleType: true},
	{name: "supplier", supplier: true},
	{name: "transport", transportType: true},
	{name: "vehicle", vehicleType: true},
	{name: "facility"},
}

// applicable уровень пропускается, если запрос не содержит нужного компонента
func (l level) applicable(q Query) bool {
	return (!l.supplier || q.SupplierID != nil) &&
		(!l.transportType || q.TransportTypeID != nil) &&
		(!l.vehicleType || q.VehicleTypeID != nil)
}

// key возвращает компоненты ключа уровня (nil = правило "для всех")
func (l level) key(q Query) (supplierID, transportTypeID, vehicleTypeID *int64) {
	if l.supplier {
		supplierID = q.SupplierID
	}
	if l.transportType {
		transportTypeID = q.TransportTypeID
	}
	if l.vehicleType {
		vehicleTypeID = q.VehicleTypeID
	}
	return supplierID, transportTypeID, vehicleTypeID
}

// Service определяет требуемую длительность ПРР
type Service struct {
	ruleRepo    RuleRepository
	vehicleRepo VehicleTypeRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса длительности
func NewService(ruleRepo RuleRepository, vehicleRepo VehicleTypeRepository, logger Logger) *Service {
	return &Service{
		ruleRepo:    ruleRepo,
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// Resolve возвращает длительность в минутах
// Если ни одно правило не подошло, используется длительность типа ТС
func (s *Service) Resolve(ctx context.Context, q Query) (int, error) {
	for _, lvl := range levels {
		if !lvl.applicable(q) {
			continue
		}

		supplierID, transportTypeID, vehicleTypeID := lvl.key(q)
		rule, err := s.ruleRepo.GetByKey(ctx, q.FacilityID, supplierID, transportTypeID, vehicleTypeID)
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			continue
		}
		if err != nil {
			s.logger.Error("ResolveDuration: failed to get rule at level %s: %v", lvl.name, err)
			return 0, fmt.Errorf("%w: level %s: %v", ErrInternal, lvl.name, err)
		}

		s.logger.Info("ResolveDuration: facility=%d matched rule id=%d at level %s: %d min",
			q.FacilityID, rule.ID, lvl.name, rule.DurationMinutes)
		return checkPositive(rule.DurationMinutes)
	}

	// Ни одно правило не подошло - берем длительность типа ТС
	if q.VehicleTypeID == nil {
		s.logger.Warn("ResolveDuration: facility=%d no rule and no vehicle type", q.FacilityID)
		return 0, fmt.Errorf("%w: no rule matched and vehicle type is not set", ErrInvalidDuration)
	}

	vehicleType, err := s.vehicleRepo.GetVehicleType(ctx, *q.VehicleTypeID)
	if errors.Is(err, referenceRepo.ErrVehicleTypeNotFound) {
		return 0, ErrVehicleTypeNotFound
	}
	if err != nil {
		s.logger.Error("ResolveDuration: failed to get vehicle type id=%d: %v", *q.VehicleTypeID, err)
		return 0, fmt.Errorf("%w: vehicle type: %v", ErrInternal, err)
	}

	s.logger.Info("ResolveDuration: facility=%d fallback to vehicle type id=%d: %d min",
		q.FacilityID, vehicleType.ID, vehicleType.DurationMinutes)
	return checkPositive(vehicleType.DurationMinutes)
}

func checkPositive(minutes int) (int, error) {
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, minutes)
	}
	return minutes, nil
}
