package docks

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

// Query параметры подбора доков
type Query struct {
	FacilityID      int64
	Direction       domain.Direction
	ZoneID          *int64
	TransportTypeID *int64
}

// Service подбирает и упорядочивает доки-кандидаты
type Service struct {
	dockRepo DockRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса подбора доков
func NewService(dockRepo DockRepository, logger Logger) *Service {
	return &Service{dockRepo: dockRepo, logger: logger}
}

// Candidates возвращает доки объекта, способные принять бронирование, в порядке попыток
// Если с ограничениями по зоне и типу перевозки ничего не нашлось, а тип перевозки задан,
// поиск повторяется один раз без этих ограничений
func (s *Service) Candidates(ctx context.Context, q Query) ([]*domain.Dock, error) {
	all, err := s.dockRepo.ListDocks(ctx, q.FacilityID)
	if err != nil {
		s.logger.Error("DockCandidates: failed to list docks for facility=%d: %v", q.FacilityID, err)
		return nil, fmt.Errorf("%w: list docks: %v", ErrInternal, err)
	}

	candidates := Filter(all, q, true)
	if len(candidates) == 0 && q.TransportTypeID != nil {
		s.logger.Warn("DockCandidates: facility=%d no docks for zone/transport type, relaxing constraints", q.FacilityID)
		candidates = Filter(all, q, false)
	}

	Rank(candidates, q.Direction)

	s.logger.Info("DockCandidates: facility=%d direction=%s -> %d candidates", q.FacilityID, q.Direction, len(candidates))
	return candidates, nil
}

// Filter отбирает доки, совместимые с направлением
// При withRestrictions дополнительно учитываются зона и тип перевозки
func Filter(all []*domain.Dock, q Query, withRestrictions bool) []*domain.Dock {
	result := make([]*domain.Dock, 0, len(all))
	for _, dock := range all {
		if !domain.Compatible(dock.DockType, q.Direction) {
			continue
		}
		if withRestrictions && (!dock.ServesZone(q.ZoneID) || !dock.ServesTransportType(q.TransportTypeID)) {
			continue
		}
		result = append(result, dock)
	}
	return result
}

// Rank сортирует доки: сначала тип точно под направление, затем универсальные;
// внутри группы по имени, затем по ID
func Rank(docks []*domain.Dock, direction domain.Direction) {
	exact := domain.ExactDockType(direction)
	sort.SliceStable(docks, func(i, j int) bool {
		ei, ej := docks[i].DockType == exact, docks[j].DockType == exact
		if ei != ej {
			return ei
		}
		if docks[i].Name != docks[j].Name {
			return docks[i].Name < docks[j].Name
		}
		return docks[i].ID < docks[j].ID
	})
}
