package durationrule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockBookingService/pkg/psqlbuilder"
)

// Repository репозиторий правил длительности ПРР
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил длительности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByKey получает правило по точному ключу (facility, supplier, transport type, vehicle type)
// nil компонент ключа ищется как NULL (правило "для всех")
func (r *Repository) GetByKey(ctx context.Context, facilityID int64, supplierID, transportTypeID, vehicleTypeID *int64) (*domain.DurationRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"facility_id",
		"supplier_id",
		"transport_type_id",
		"vehicle_type_id",
		"duration_minutes",
	).
		From("duration_rules").
		Where(squirrel.Eq{"facility_id": facilityID})

	// Фильтрация по каждому компоненту (NULL или конкретное значение)
	selectBuilder = whereNullable(selectBuilder, "supplier_id", supplierID)
	selectBuilder = whereNullable(selectBuilder, "transport_type_id", transportTypeID)
	selectBuilder = whereNullable(selectBuilder, "vehicle_type_id", vehicleTypeID)

	query, args, err := selectBuilder.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - build select query: %v", ErrBuildQuery, err)
	}

	var rule domain.DurationRule
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&rule.FacilityID,
		&rule.SupplierID,
		&rule.TransportTypeID,
		&rule.VehicleTypeID,
		&rule.DurationMinutes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByKey - scan rule: %w", ErrScanRow, err)
	}

	return &rule, nil
}

func whereNullable(b squirrel.SelectBuilder, column string, value *int64) squirrel.SelectBuilder {
	if value == nil {
		return b.Where(squirrel.Eq{column: nil})
	}
	return b.Where(squirrel.Eq{column: *value})
}
