package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	referenceRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/reference"
	"github.com/m04kA/SMC-DockBookingService/pkg/logger"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

var (
	today    = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	workDate = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRefs struct {
	docks []*domain.Dock
	err   error
}

func (f *fakeRefs) GetFacility(_ context.Context, id int64) (*domain.Facility, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != 1 {
		return nil, referenceRepo.ErrFacilityNotFound
	}
	return &domain.Facility{ID: 1, Name: "Склад 1"}, nil
}

func (f *fakeRefs) ListDocks(_ context.Context, _ int64) ([]*domain.Dock, error) {
	return f.docks, nil
}

type fakeSlots struct {
	slots     map[int64][]*domain.TimeSlot
	occupancy map[int64]int
	err       error
}

func (f *fakeSlots) ListAvailableFrom(_ context.Context, dockID int64, _ time.Time, _ types.TimeString) ([]*domain.TimeSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots[dockID], nil
}

func (f *fakeSlots) CountOccupancy(_ context.Context, ids []int64) (map[int64]int, error) {
	result := make(map[int64]int)
	for _, id := range ids {
		if n, ok := f.occupancy[id]; ok {
			result[id] = n
		}
	}
	return result, nil
}

func slot(id, dockID int64, start, end types.TimeString, capacity int) *domain.TimeSlot {
	return &domain.TimeSlot{ID: id, DockID: dockID, Date: workDate, StartTime: start, EndTime: end, Capacity: capacity, IsAvailable: true}
}

func newUseCase(refs *fakeRefs, slots *fakeSlots) *UseCase {
	uc := NewUseCase(refs, slots, logger.Nop{})
	uc.timeProvider = fixedTime{now: today}
	return uc
}

func TestExecute_ListsFreeSlotsOnCompatibleDocks(t *testing.T) {
	refs := &fakeRefs{docks: []*domain.Dock{
		{ID: 10, FacilityID: 1, Name: "A", DockType: domain.DockTypeUniversal},
		{ID: 11, FacilityID: 1, Name: "B", DockType: domain.DockTypeEntrance},
		{ID: 12, FacilityID: 1, Name: "C", DockType: domain.DockTypeExit},
	}}
	slots := &fakeSlots{
		slots: map[int64][]*domain.TimeSlot{
			10: {slot(1, 10, "09:00", "09:30", 2), slot(2, 10, "09:30", "10:00", 1)},
			11: {slot(3, 11, "09:00", "10:00", 1)},
			12: {slot(4, 12, "09:00", "10:00", 5)},
		},
		occupancy: map[int64]int{1: 1, 2: 1},
	}

	resp, err := newUseCase(refs, slots).Execute(context.Background(), &Request{
		UserID: 7, FacilityID: 1, Direction: domain.DirectionInbound, Date: workDate,
	})
	require.NoError(t, err)

	// выездной док не подходит для приемки, точный тип идет раньше универсального
	require.Len(t, resp.Docks, 2)
	assert.Equal(t, int64(11), resp.Docks[0].ID)
	assert.Equal(t, int64(10), resp.Docks[1].ID)

	require.Len(t, resp.Docks[0].Slots, 1)
	assert.Equal(t, 60, resp.Docks[0].Slots[0].DurationMinutes)

	// полностью занятый слот 2 не возвращается
	universal := resp.Docks[1].Slots
	require.Len(t, universal, 1)
	assert.Equal(t, int64(1), universal[0].ID)
	assert.Equal(t, 1, universal[0].AvailableSpots)
	assert.Equal(t, 2, universal[0].TotalSpots)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		refs    *fakeRefs
		slots   *fakeSlots
		req     *Request
		wantErr error
	}{
		{
			name:    "unknown direction",
			refs:    &fakeRefs{},
			slots:   &fakeSlots{},
			req:     &Request{FacilityID: 1, Direction: "sideways", Date: workDate},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			refs:    &fakeRefs{},
			slots:   &fakeSlots{},
			req:     &Request{FacilityID: 1, Direction: domain.DirectionInbound},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "date in the past",
			refs:    &fakeRefs{},
			slots:   &fakeSlots{},
			req:     &Request{FacilityID: 1, Direction: domain.DirectionInbound, Date: today.AddDate(0, 0, -1)},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "unknown facility",
			refs:    &fakeRefs{},
			slots:   &fakeSlots{},
			req:     &Request{FacilityID: 2, Direction: domain.DirectionInbound, Date: workDate},
			wantErr: ErrFacilityNotFound,
		},
		{
			name:    "reference failure",
			refs:    &fakeRefs{err: errors.New("db down")},
			slots:   &fakeSlots{},
			req:     &Request{FacilityID: 1, Direction: domain.DirectionInbound, Date: workDate},
			wantErr: ErrInternal,
		},
		{
			name:    "slot repository failure",
			refs:    &fakeRefs{docks: []*domain.Dock{{ID: 10, DockType: domain.DockTypeUniversal}}},
			slots:   &fakeSlots{err: errors.New("db down")},
			req:     &Request{FacilityID: 1, Direction: domain.DirectionOutbound, Date: workDate},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(tt.refs, tt.slots).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	resp, err := newUseCase(&fakeRefs{}, &fakeSlots{}).Execute(context.Background(), &Request{
		FacilityID: 1, Direction: domain.DirectionOutbound, Date: today,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Docks)
}
