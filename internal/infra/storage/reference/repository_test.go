package reference

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_GetFacility(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, name, capacity_in, capacity_out FROM facilities WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity_in", "capacity_out"}).
			AddRow(1, "Main DC", 2, nil))

	facility, err := repo.GetFacility(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, facility.CapacityIn)
	assert.Equal(t, 2, *facility.CapacityIn)
	assert.Nil(t, facility.CapacityOut)
}

func TestRepository_GetFacility_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM facilities`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity_in", "capacity_out"}))

	_, err := repo.GetFacility(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestRepository_ListDocks(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM docks d WHERE d.facility_id = \$1 ORDER BY d.name ASC, d.id ASC`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "facility_id", "name", "dock_type", "zone_ids", "transport_type_ids"}).
			AddRow(10, 1, "A-1", "entrance", "{1,2}", "{}").
			AddRow(11, 1, "U-1", "universal", "{}", "{5}"))

	docks, err := repo.ListDocks(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, docks, 2)

	assert.Equal(t, domain.DockTypeEntrance, docks[0].DockType)
	assert.Equal(t, []int64{1, 2}, docks[0].ZoneIDs)
	assert.Empty(t, docks[0].TransportTypeIDs)
	assert.Equal(t, []int64{5}, docks[1].TransportTypeIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetVehicleType_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM vehicle_types`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "duration_minutes"}))

	_, err := repo.GetVehicleType(context.Background(), 3)
	assert.ErrorIs(t, err, ErrVehicleTypeNotFound)
}

func TestRepository_GetSupplier(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM suppliers WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "zone_id"}).AddRow(4, "Acme", 2))

	supplier, err := repo.GetSupplier(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, supplier.ZoneID)
	assert.Equal(t, int64(2), *supplier.ZoneID)
}
