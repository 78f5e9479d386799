package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	quotaRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/quota"
)

// DayAvailability остаток квоты на одну дату
type DayAvailability struct {
	Date             time.Time
	QuotaID          *int64
	AllowOverbooking bool
	Total            float64
	Used             float64
	Remaining        float64
}

// Availability возвращает квоту, занятый объём и остаток по каждой дате периода [from, to]
func (s *Service) Availability(
	ctx context.Context,
	facilityID int64,
	direction domain.Direction,
	transportTypeID int64,
	from, to time.Time,
) ([]DayAvailability, error) {
	used, err := s.quotaRepo.UsedVolumeByDate(ctx, facilityID, direction, transportTypeID, from, to)
	if err != nil {
		s.logger.Error("QuotaAvailability: failed to get used volume facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: used volume: %v", ErrInternal, err)
	}

	// Одна квота покрывает все даты ячейки (год, месяц, день недели)
	cells := make(map[string]*domain.VolumeQuota)

	result := make([]DayAvailability, 0)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%d-%d-%d", date.Year(), date.Month(), domain.WeekdayIndex(date))
		quota, seen := cells[cell]
		if !seen {
			quota, err = s.quotaRepo.FindForDate(ctx, facilityID, direction, transportTypeID, date)
			if errors.Is(err, quotaRepo.ErrQuotaNotFound) {
				quota, err = nil, nil
			}
			if err != nil {
				s.logger.Error("QuotaAvailability: failed to find quota facility=%d date=%s: %v",
					facilityID, date.Format(domain.DateFormat), err)
				return nil, fmt.Errorf("%w: find quota: %v", ErrInternal, err)
			}
			cells[cell] = quota
		}

		day := DayAvailability{
			Date: date,
			Used: used[date.Format(domain.DateFormat)],
		}
		if quota != nil {
			id := quota.ID
			day.QuotaID = &id
			day.AllowOverbooking = quota.AllowOverbooking
			day.Total = quota.EffectiveVolume(date)
			day.Remaining = day.Total - day.Used
		}
		result = append(result, day)
	}

	return result, nil
}
