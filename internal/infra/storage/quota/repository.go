package quota

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockBookingService/pkg/psqlbuilder"
)

// Repository репозиторий квот объёма и фактически занятого объёма
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория квот
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindForDate ищет квоту объекта и направления на дату (год, месяц, день недели),
// включающую тип перевозки. Переопределения квоты загружаются вместе с ней.
func (r *Repository) FindForDate(
	ctx context.Context,
	facilityID int64,
	direction domain.Direction,
	transportTypeID int64,
	date time.Time,
) (*domain.VolumeQuota, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"q.id",
		"q.facility_id",
		"q.direction",
		"q.year",
		"q.month",
		"q.day_of_week",
		"q.volume",
		"q.allow_overbooking",
		"ARRAY(SELECT qt.transport_type_id FROM volume_quota_transport_types qt WHERE qt.quota_id = q.id ORDER BY qt.transport_type_id) AS transport_type_ids",
	).
		From("volume_quotas q").
		Where(squirrel.Eq{
			"q.facility_id": facilityID,
			"q.direction":   direction,
			"q.year":        date.Year(),
			"q.month":       int(date.Month()),
			"q.day_of_week": domain.WeekdayIndex(date),
		}).
		Where("EXISTS (SELECT 1 FROM volume_quota_transport_types qt WHERE qt.quota_id = q.id AND qt.transport_type_id = ?)", transportTypeID).
		OrderBy("q.id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindForDate - build select query: %v", ErrBuildQuery, err)
	}

	var q domain.VolumeQuota
	var month int
	var transportTypeIDs pq.Int64Array

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&q.ID,
		&q.FacilityID,
		&q.Direction,
		&q.Year,
		&month,
		&q.DayOfWeek,
		&q.Volume,
		&q.AllowOverbooking,
		&transportTypeIDs,
	)

	if err == sql.ErrNoRows {
		return nil, ErrQuotaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindForDate - scan quota: %w", ErrScanRow, err)
	}

	q.Month = time.Month(month)
	q.TransportTypeIDs = []int64(transportTypeIDs)

	overrides, err := r.listOverrides(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Overrides = overrides

	return &q, nil
}

// UsedVolume суммирует объём подтвержденных бронирований объекта, направления и типа перевозки,
// у которых есть слот на дату. Бронирование без объёма считается как 0.
func (r *Repository) UsedVolume(
	ctx context.Context,
	facilityID int64,
	direction domain.Direction,
	transportTypeID int64,
	date time.Time,
) (float64, error) {
	used, err := r.UsedVolumeByDate(ctx, facilityID, direction, transportTypeID, date, date)
	if err != nil {
		return 0, err
	}
	return used[date.Format(domain.DateFormat)], nil
}

// UsedVolumeByDate возвращает занятый объём по датам периода [from, to]
// Ключ результата - дата в формате domain.DateFormat
func (r *Repository) UsedVolumeByDate(
	ctx context.Context,
	facilityID int64,
	direction domain.Direction,
	transportTypeID int64,
	from, to time.Time,
) (map[string]float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("bd.slot_date", "COALESCE(SUM(COALESCE(b.cubes, 0)), 0)").
		From("bookings b").
		Join(`(SELECT DISTINCT bts.booking_id, ts.slot_date
			FROM booking_time_slots bts JOIN time_slots ts ON ts.id = bts.time_slot_id
			WHERE ts.slot_date >= ? AND ts.slot_date <= ?) bd ON bd.booking_id = b.id`, from, to).
		Where(squirrel.Eq{
			"b.facility_id":       facilityID,
			"b.direction":         direction,
			"b.transport_type_id": transportTypeID,
			"b.status":            domain.StatusConfirmed,
		}).
		GroupBy("bd.slot_date").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UsedVolumeByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UsedVolumeByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string]float64)
	for rows.Next() {
		var date time.Time
		var used float64
		if err := rows.Scan(&date, &used); err != nil {
			return nil, fmt.Errorf("%w: UsedVolumeByDate - scan row: %w", ErrScanRow, err)
		}
		result[date.Format(domain.DateFormat)] = used
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: UsedVolumeByDate - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) listOverrides(ctx context.Context, quotaID int64) ([]domain.VolumeQuotaOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("override_date", "volume").
		From("volume_quota_overrides").
		Where(squirrel.Eq{"quota_id": quotaID}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listOverrides - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]domain.VolumeQuotaOverride, 0)
	for rows.Next() {
		var ov domain.VolumeQuotaOverride
		if err := rows.Scan(&ov.Date, &ov.Volume); err != nil {
			return nil, fmt.Errorf("%w: listOverrides - scan row: %w", ErrScanRow, err)
		}
		overrides = append(overrides, ov)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listOverrides - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}
