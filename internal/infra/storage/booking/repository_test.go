package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DockBookingService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO bookings \(user_id,facility_id,direction`).
		WithArgs(int64(7), int64(1), domain.DirectionInbound, int64(3),
			nil, nil, ptr.Ptr(int64(10)), ptr.Ptr(12.5), domain.StatusConfirmed,
			"A123BC", "Ivan Petrov", "+79990000000", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		UserID:          7,
		FacilityID:      1,
		Direction:       domain.DirectionInbound,
		VehicleTypeID:   3,
		TransportTypeID: ptr.Ptr(int64(10)),
		Cubes:           ptr.Ptr(12.5),
		Status:          domain.StatusConfirmed,
		VehiclePlate:    "A123BC",
		DriverFullName:  "Ivan Petrov",
		DriverPhone:     "+79990000000",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateLinks(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO booking_time_slots \(booking_id,time_slot_id\) VALUES \(\$1,\$2\),\(\$3,\$4\)`).
		WithArgs(int64(42), int64(100), int64(42), int64(101)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.CreateLinks(context.Background(), 42, []int64{100, 101}))
	require.NoError(t, repo.CreateLinks(context.Background(), 42, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM bookings b WHERE b.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(nil))

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByID_LocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)
	now := time.Now()
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM bookings b WHERE b.id = \$1 FOR UPDATE`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "facility_id", "direction", "vehicle_type_id", "supplier_id", "zone_id",
			"transport_type_id", "cubes", "status", "vehicle_plate", "driver_full_name", "driver_phone",
			"transport_sheet", "created_at", "updated_at",
		}).AddRow(42, 7, 1, "in", 3, nil, nil, 10, 12.5, "confirmed", "A123BC", "Ivan", "+7999", nil, now, now))
	mock.ExpectQuery(`FROM booking_time_slots bts JOIN time_slots ts`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"booking_id", "id", "dock_id", "slot_date", "start_time", "end_time", "capacity", "is_available",
		}).
			AddRow(42, 100, 4, date, "09:00:00", "09:30:00", 1, true).
			AddRow(42, 101, 4, date, "09:30:00", "10:00:00", 1, true))
	mock.ExpectRollback()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	booking, err := repo.GetByID(ctx, 42)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, domain.DirectionInbound, booking.Direction)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.Equal(t, 12.5, booking.Volume())
	require.Len(t, booking.Slots, 2)
	assert.Equal(t, "09:00", booking.Slots[0].StartTime.String())
	assert.Equal(t, "10:00", booking.Slots[1].EndTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteLinks(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM booking_time_slots WHERE booking_id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteLinks(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1`).
		WithArgs(domain.StatusCancelled, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 9, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
