package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockBookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.user_id",
	"b.facility_id",
	"b.direction",
	"b.vehicle_type_id",
	"b.supplier_id",
	"b.zone_id",
	"b.transport_type_id",
	"b.cubes",
	"b.status",
	"b.vehicle_plate",
	"b.driver_full_name",
	"b.driver_phone",
	"b.transport_sheet",
	"b.created_at",
	"b.updated_at",
}

// Сортировка по дате и времени первого слота бронирования
const orderByFirstSlotDesc = `(SELECT MIN(ts.slot_date + ts.start_time)
	FROM booking_time_slots bts JOIN time_slots ts ON ts.id = bts.time_slot_id
	WHERE bts.booking_id = b.id) DESC NULLS LAST`

// Repository репозиторий для работы с бронированиями и их связями со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается внутри транзакции вместе с CreateLinks
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"facility_id",
			"direction",
			"vehicle_type_id",
			"supplier_id",
			"zone_id",
			"transport_type_id",
			"cubes",
			"status",
			"vehicle_plate",
			"driver_full_name",
			"driver_phone",
			"transport_sheet",
		).
		Values(
			booking.UserID,
			booking.FacilityID,
			booking.Direction,
			booking.VehicleTypeID,
			booking.SupplierID,
			booking.ZoneID,
			booking.TransportTypeID,
			booking.Cubes,
			booking.Status,
			booking.VehiclePlate,
			booking.DriverFullName,
			booking.DriverPhone,
			booking.TransportSheet,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// CreateLinks привязывает бронирование к слотам
func (r *Repository) CreateLinks(ctx context.Context, bookingID int64, slotIDs []int64) error {
	if len(slotIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_time_slots").
		Columns("booking_id", "time_slot_id")
	for _, slotID := range slotIDs {
		insertBuilder = insertBuilder.Values(bookingID, slotID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateLinks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateLinks - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// DeleteLinks удаляет все связи бронирования со слотами, освобождая вместимость
func (r *Repository) DeleteLinks(ctx context.Context, bookingID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_time_slots").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteLinks - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteLinks - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteLinks - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// GetByID получает бронирование по ID вместе с занятыми слотами
// Внутри транзакции строка бронирования блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	slots, err := r.listSlots(ctx, []int64{booking.ID})
	if err != nil {
		return nil, err
	}
	booking.Slots = slots[booking.ID]

	return booking, nil
}

// GetByUser получает бронирования пользователя, отсортированные по дате первого слота (сначала новые)
func (r *Repository) GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.user_id": filter.UserID}).
		OrderBy(orderByFirstSlotDesc, "b.id DESC")

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	// Фильтрация по периоду: бронирование попадает, если хотя бы один его слот в периоде
	if filter.StartDate != nil || filter.EndDate != nil {
		period := squirrel.Select("1").
			From("booking_time_slots bts").
			Join("time_slots ts ON ts.id = bts.time_slot_id").
			Where("bts.booking_id = b.id")
		if filter.StartDate != nil {
			period = period.Where(squirrel.GtOrEq{"ts.slot_date": *filter.StartDate})
		}
		if filter.EndDate != nil {
			period = period.Where(squirrel.LtOrEq{"ts.slot_date": *filter.EndDate})
		}
		selectBuilder = selectBuilder.Where(squirrel.Expr("EXISTS (?)", period))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUser - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
		ids = append(ids, booking.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUser - rows error: %w", ErrScanRow, err)
	}

	slots, err := r.listSlots(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, booking := range bookings {
		booking.Slots = slots[booking.ID]
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateDetails обновляет объём и поля сопроводительного листа
func (r *Repository) UpdateDetails(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("cubes", booking.Cubes).
		Set("vehicle_plate", booking.VehiclePlate).
		Set("driver_full_name", booking.DriverFullName).
		Set("driver_phone", booking.DriverPhone).
		Set("transport_sheet", booking.TransportSheet).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - execute update: %w", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time
	return nil
}

// Delete физически удаляет бронирование (связи удаляются каскадом)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

// listSlots загружает слоты бронирований, сгруппированные по booking_id и отсортированные по времени начала
func (r *Repository) listSlots(ctx context.Context, bookingIDs []int64) (map[int64][]*domain.TimeSlot, error) {
	result := make(map[int64][]*domain.TimeSlot, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"bts.booking_id",
		"ts.id",
		"ts.dock_id",
		"ts.slot_date",
		"ts.start_time",
		"ts.end_time",
		"ts.capacity",
		"ts.is_available",
	).
		From("booking_time_slots bts").
		Join("time_slots ts ON ts.id = bts.time_slot_id").
		Where(squirrel.Eq{"bts.booking_id": bookingIDs}).
		OrderBy("bts.booking_id", "ts.slot_date", "ts.start_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: listSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID int64
		var slot domain.TimeSlot
		if err := rows.Scan(
			&bookingID,
			&slot.ID,
			&slot.DockID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Capacity,
			&slot.IsAvailable,
		); err != nil {
			return nil, fmt.Errorf("%w: listSlots - scan row: %w", ErrScanRow, err)
		}
		result[bookingID] = append(result[bookingID], &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listSlots - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке bookingColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.FacilityID,
		&booking.Direction,
		&booking.VehicleTypeID,
		&booking.SupplierID,
		&booking.ZoneID,
		&booking.TransportTypeID,
		&booking.Cubes,
		&booking.Status,
		&booking.VehiclePlate,
		&booking.DriverFullName,
		&booking.DriverPhone,
		&booking.TransportSheet,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
