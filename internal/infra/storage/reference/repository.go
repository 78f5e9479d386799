package reference

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockBookingService/pkg/psqlbuilder"
)

// Наборы ограничений дока собираются подзапросами в массивы
var dockColumns = []string{
	"d.id",
	"d.facility_id",
	"d.name",
	"d.dock_type",
	"ARRAY(SELECT dz.zone_id FROM dock_zones dz WHERE dz.dock_id = d.id ORDER BY dz.zone_id) AS zone_ids",
	"ARRAY(SELECT dt.transport_type_id FROM dock_transport_types dt WHERE dt.dock_id = d.id ORDER BY dt.transport_type_id) AS transport_type_ids",
}

// Repository репозиторий справочных данных: объекты, доки, типы ТС, поставщики, типы перевозок
// Справочники здесь только читаются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetFacility получает объект по ID
func (r *Repository) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "capacity_in", "capacity_out").
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFacility - build select query: %v", ErrBuildQuery, err)
	}

	var facility domain.Facility
	var capacityIn, capacityOut sql.NullInt32

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&facility.ID,
		&facility.Name,
		&capacityIn,
		&capacityOut,
	)

	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFacility - scan facility: %w", ErrScanRow, err)
	}

	if capacityIn.Valid {
		v := int(capacityIn.Int32)
		facility.CapacityIn = &v
	}
	if capacityOut.Valid {
		v := int(capacityOut.Int32)
		facility.CapacityOut = &v
	}

	return &facility, nil
}

// GetDock получает док по ID вместе с наборами зон и типов перевозок
func (r *Repository) GetDock(ctx context.Context, id int64) (*domain.Dock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(dockColumns...).
		From("docks d").
		Where(squirrel.Eq{"d.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDock - build select query: %v", ErrBuildQuery, err)
	}

	dock, err := scanDock(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDock - scan dock: %w", ErrScanRow, err)
	}

	return dock, nil
}

// ListDocks получает все доки объекта, отсортированные по имени и ID
func (r *Repository) ListDocks(ctx context.Context, facilityID int64) ([]*domain.Dock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(dockColumns...).
		From("docks d").
		Where(squirrel.Eq{"d.facility_id": facilityID}).
		OrderBy("d.name ASC", "d.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDocks - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	docks := make([]*domain.Dock, 0)
	for rows.Next() {
		dock, err := scanDock(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDocks - scan row: %w", ErrScanRow, err)
		}
		docks = append(docks, dock)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDocks - rows error: %w", ErrScanRow, err)
	}

	return docks, nil
}

// GetVehicleType получает тип ТС по ID
func (r *Repository) GetVehicleType(ctx context.Context, id int64) (*domain.VehicleType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "duration_minutes").
		From("vehicle_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleType - build select query: %v", ErrBuildQuery, err)
	}

	var vehicleType domain.VehicleType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vehicleType.ID,
		&vehicleType.Name,
		&vehicleType.DurationMinutes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVehicleTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleType - scan vehicle type: %w", ErrScanRow, err)
	}

	return &vehicleType, nil
}

// GetSupplier получает поставщика по ID
func (r *Repository) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "zone_id").
		From("suppliers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSupplier - build select query: %v", ErrBuildQuery, err)
	}

	var supplier domain.Supplier
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&supplier.ID,
		&supplier.Name,
		&supplier.ZoneID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSupplier - scan supplier: %w", ErrScanRow, err)
	}

	return &supplier, nil
}

// GetTransportType получает тип перевозки по ID
func (r *Repository) GetTransportType(ctx context.Context, id int64) (*domain.TransportType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("transport_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTransportType - build select query: %v", ErrBuildQuery, err)
	}

	var transportType domain.TransportType
	err = executor.QueryRowContext(ctx, query, args...).Scan(&transportType.ID, &transportType.Name)

	if err == sql.ErrNoRows {
		return nil, ErrTransportTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTransportType - scan transport type: %w", ErrScanRow, err)
	}

	return &transportType, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDock(row rowScanner) (*domain.Dock, error) {
	var dock domain.Dock
	var zoneIDs, transportTypeIDs pq.Int64Array

	err := row.Scan(
		&dock.ID,
		&dock.FacilityID,
		&dock.Name,
		&dock.DockType,
		&zoneIDs,
		&transportTypeIDs,
	)
	if err != nil {
		return nil, err
	}

	dock.ZoneIDs = []int64(zoneIDs)
	dock.TransportTypeIDs = []int64(transportTypeIDs)

	return &dock, nil
}
