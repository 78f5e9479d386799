package quota

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/dbmetrics"
)

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func TestRepository_FindForDate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM volume_quotas q WHERE .* AND EXISTS .* LIMIT 1`).
		WithArgs(0, "in", int64(1), 3, 2025, int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "facility_id", "direction", "year", "month", "day_of_week", "volume", "allow_overbooking", "transport_type_ids",
		}).AddRow(5, 1, "in", 2025, 3, 0, 100.0, false, "{10,11}"))
	mock.ExpectQuery(`FROM volume_quota_overrides WHERE quota_id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"override_date", "volume"}).AddRow(monday, 40.0))

	q, err := repo.FindForDate(context.Background(), 1, domain.DirectionInbound, 10, monday)
	require.NoError(t, err)

	assert.Equal(t, time.March, q.Month)
	assert.Equal(t, []int64{10, 11}, q.TransportTypeIDs)
	assert.Equal(t, 40.0, q.EffectiveVolume(monday))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindForDate_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`FROM volume_quotas q`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindForDate(context.Background(), 1, domain.DirectionInbound, 10, monday)
	assert.ErrorIs(t, err, ErrQuotaNotFound)
}

func TestRepository_UsedVolume(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT bd.slot_date, COALESCE\(SUM\(COALESCE\(b.cubes, 0\)\), 0\) FROM bookings b JOIN .* GROUP BY bd.slot_date`).
		WithArgs(monday, monday, "in", int64(1), "confirmed", int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"slot_date", "used"}).AddRow(monday, 60.0))

	used, err := repo.UsedVolume(context.Background(), 1, domain.DirectionInbound, 10, monday)
	require.NoError(t, err)
	assert.Equal(t, 60.0, used)
	assert.NoError(t, mock.ExpectationsWereMet())
}
