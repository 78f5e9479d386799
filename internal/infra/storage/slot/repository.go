package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

var slotColumns = []string{
	"id",
	"dock_id",
	"slot_date",
	"start_time",
	"end_time",
	"capacity",
	"is_available",
}

// Repository репозиторий слотов доков
// Занятость слотов всегда считается запросом, без кэширования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// ListAvailableFrom получает доступные слоты дока на дату, начинающиеся не раньше from,
// отсортированные по времени начала
// Строки не блокируются: блокировку выбранной цепочки берет LockSlots
func (r *Repository) ListAvailableFrom(ctx context.Context, dockID int64, date time.Time, from types.TimeString) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{
			"dock_id":      dockID,
			"slot_date":    date,
			"is_available": true,
		}).
		Where(squirrel.GtOrEq{"start_time": from}).
		OrderBy("start_time ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableFrom - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailableFrom - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailableFrom - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// LockSlots блокирует строки слотов (FOR UPDATE) до конца текущей транзакции
// и возвращает число заблокированных строк. Строки берутся по возрастанию id
// Вне транзакции блокировать нечего: возвращается len(slotIDs)
func (r *Repository) LockSlots(ctx context.Context, slotIDs []int64) (int, error) {
	if len(slotIDs) == 0 || !dbmetrics.IsInTransaction(ctx) {
		return len(slotIDs), nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("time_slots").
		Where(squirrel.Eq{"id": slotIDs}).
		OrderBy("id ASC").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: LockSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: LockSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		locked++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: LockSlots - rows error: %w", ErrScanRow, err)
	}

	return locked, nil
}

// CountOccupancy возвращает число подтвержденных бронирований на каждом слоте
// Слоты без бронирований в результат не попадают
func (r *Repository) CountOccupancy(ctx context.Context, slotIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(slotIDs))
	if len(slotIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("bts.time_slot_id", "COUNT(*)").
		From("booking_time_slots bts").
		Join("bookings b ON b.id = bts.booking_id").
		Where(squirrel.Eq{
			"bts.time_slot_id": slotIDs,
			"b.status":         domain.StatusConfirmed,
		}).
		GroupBy("bts.time_slot_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountOccupancy - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slotID int64
		var count int
		if err := rows.Scan(&slotID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountOccupancy - scan row: %w", ErrScanRow, err)
		}
		result[slotID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountOccupancy - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// CountDirectional считает подтвержденные бронирования направления direction на всех доках
// объекта с типом из dockTypes, занимающие то же окно (дата, начало, конец)
func (r *Repository) CountDirectional(
	ctx context.Context,
	facilityID int64,
	direction domain.Direction,
	dockTypes []domain.DockType,
	date time.Time,
	start, end types.TimeString,
) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dockTypeValues := make([]string, len(dockTypes))
	for i, t := range dockTypes {
		dockTypeValues[i] = string(t)
	}

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT b.id)").
		From("booking_time_slots bts").
		Join("bookings b ON b.id = bts.booking_id").
		Join("time_slots ts ON ts.id = bts.time_slot_id").
		Join("docks d ON d.id = ts.dock_id").
		Where(squirrel.Eq{
			"d.facility_id": facilityID,
			"d.dock_type":   dockTypeValues,
			"b.direction":   direction,
			"b.status":      domain.StatusConfirmed,
			"ts.slot_date":  date,
			"ts.start_time": start,
			"ts.end_time":   end,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountDirectional - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountDirectional - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// CountLinks считает бронирования, привязанные к слоту
// При onlyConfirmed учитываются только подтвержденные
func (r *Repository) CountLinks(ctx context.Context, slotID int64, onlyConfirmed bool) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("booking_time_slots bts").
		Where(squirrel.Eq{"bts.time_slot_id": slotID})

	if onlyConfirmed {
		selectBuilder = selectBuilder.
			Join("bookings b ON b.id = bts.booking_id").
			Where(squirrel.Eq{"b.status": domain.StatusConfirmed})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountLinks - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountLinks - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// SetAvailability включает или выключает слот
func (r *Repository) SetAvailability(ctx context.Context, id int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_available", available).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	err := row.Scan(
		&slot.ID,
		&slot.DockID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&slot.IsAvailable,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
