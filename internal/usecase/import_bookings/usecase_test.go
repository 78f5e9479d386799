package import_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	quotaRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/quota"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
	"github.com/m04kA/SMC-DockBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-DockBookingService/pkg/logger"
	"github.com/m04kA/SMC-DockBookingService/pkg/ptr"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

var thursday = time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)

type fakeAllocator struct {
	checkErr map[int64]error // по VehicleTypeID
	execErr  map[int64]error
	executed []*create_booking.Request
	nextID   int64
}

func (f *fakeAllocator) Check(_ context.Context, req *create_booking.Request) (*create_booking.Plan, error) {
	if err := f.checkErr[req.VehicleTypeID]; err != nil {
		return nil, err
	}
	return &create_booking.Plan{Date: req.Date, StartTime: req.StartTime, DurationMinutes: 30}, nil
}

func (f *fakeAllocator) Execute(_ context.Context, req *create_booking.Request) (*models.BookingResponse, error) {
	f.executed = append(f.executed, req)
	if err := f.execErr[req.VehicleTypeID]; err != nil {
		return nil, err
	}
	f.nextID++
	return &models.BookingResponse{ID: f.nextID, UserID: req.UserID}, nil
}

type fakeQuotas struct {
	quota *domain.VolumeQuota
	used  float64
}

func (f *fakeQuotas) FindForDate(_ context.Context, _ int64, _ domain.Direction, transportTypeID int64, date time.Time) (*domain.VolumeQuota, error) {
	if f.quota != nil && f.quota.Matches(date, transportTypeID) {
		return f.quota, nil
	}
	return nil, quotaRepo.ErrQuotaNotFound
}

func (f *fakeQuotas) UsedVolume(context.Context, int64, domain.Direction, int64, time.Time) (float64, error) {
	return f.used, nil
}

func (f *fakeQuotas) UsedVolumeByDate(context.Context, int64, domain.Direction, int64, time.Time, time.Time) (map[string]float64, error) {
	return nil, nil
}

func row(vehicleTypeID int64, cubes float64) *create_booking.Request {
	return &create_booking.Request{
		UserID:          999, // перезаписывается пользователем пакета
		FacilityID:      1,
		Direction:       domain.DirectionInbound,
		Date:            thursday,
		StartTime:       types.MustTimeString("09:00"),
		VehicleTypeID:   vehicleTypeID,
		TransportTypeID: ptr.Ptr(int64(5)),
		Cubes:           ptr.Ptr(cubes),
	}
}

func newUseCase(alloc *fakeAllocator, quotas *fakeQuotas, maxRows int) *UseCase {
	return NewUseCase(alloc, quota.NewService(quotas, logger.Nop{}), maxRows, logger.Nop{})
}

func januaryQuota() *domain.VolumeQuota {
	return &domain.VolumeQuota{
		ID: 1, FacilityID: 1, Direction: domain.DirectionInbound,
		Year: 2026, Month: time.January, DayOfWeek: 3,
		Volume: 500, TransportTypeIDs: []int64{5},
	}
}

func TestExecute_AllRowsCreated(t *testing.T) {
	alloc := &fakeAllocator{}
	uc := newUseCase(alloc, &fakeQuotas{}, 10)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, Rows: []*create_booking.Request{row(3, 10), row(3, 20)}})
	require.NoError(t, err)
	assert.True(t, resp.Validated)
	assert.Equal(t, 2, resp.Created)
	assert.Zero(t, resp.Failed)
	require.NotNil(t, resp.Rows[1].BookingID)
	assert.Equal(t, int64(2), *resp.Rows[1].BookingID)
	assert.Equal(t, int64(42), alloc.executed[0].UserID)
}

func TestExecute_PendingVolumeRejectsBatch(t *testing.T) {
	alloc := &fakeAllocator{}
	uc := newUseCase(alloc, &fakeQuotas{quota: januaryQuota(), used: 480}, 10)

	// each row fits alone (15 <= 20), together they do not
	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, Rows: []*create_booking.Request{row(3, 15), row(3, 15)}})
	require.NoError(t, err)
	assert.False(t, resp.Validated)
	assert.Equal(t, 1, resp.Failed)
	assert.Empty(t, resp.Rows[0].Error)
	assert.Contains(t, resp.Rows[1].Error, "quota exceeded")
	assert.Equal(t, 2, resp.Rows[1].Row)
	assert.Empty(t, alloc.executed)
}

func TestExecute_CheckErrorsAreReportedPerRow(t *testing.T) {
	alloc := &fakeAllocator{checkErr: map[int64]error{9: create_booking.ErrVehicleTypeNotFound}}
	uc := newUseCase(alloc, &fakeQuotas{}, 10)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, Rows: []*create_booking.Request{row(3, 1), row(9, 1), row(3, 1)}})
	require.NoError(t, err)
	assert.False(t, resp.Validated)
	assert.Equal(t, 1, resp.Failed)
	assert.Contains(t, resp.Rows[1].Error, "unknown vehicle type")
	assert.Empty(t, alloc.executed)
}

func TestExecute_DryRun(t *testing.T) {
	alloc := &fakeAllocator{}
	uc := newUseCase(alloc, &fakeQuotas{}, 10)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, DryRun: true, Rows: []*create_booking.Request{row(3, 1)}})
	require.NoError(t, err)
	assert.True(t, resp.Validated)
	assert.Zero(t, resp.Created)
	assert.Empty(t, alloc.executed)
}

func TestExecute_AllocationFailureDoesNotStopBatch(t *testing.T) {
	alloc := &fakeAllocator{execErr: map[int64]error{4: create_booking.ErrNoAvailableChain}}
	uc := newUseCase(alloc, &fakeQuotas{}, 10)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, Rows: []*create_booking.Request{row(4, 1), row(3, 1)}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Created)
	assert.Equal(t, 1, resp.Failed)
	assert.Nil(t, resp.Rows[0].BookingID)
	assert.NotNil(t, resp.Rows[1].BookingID)
}

func TestExecute_BatchLimits(t *testing.T) {
	uc := newUseCase(&fakeAllocator{}, &fakeQuotas{}, 1)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42})
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = uc.Execute(context.Background(), &Request{UserID: 42, Rows: []*create_booking.Request{row(3, 1), row(3, 1)}})
	assert.ErrorIs(t, err, ErrBatchTooLarge)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
