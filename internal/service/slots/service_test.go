package slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DockBookingService/pkg/logger"
)

type fakeSlots struct {
	slots     map[int64]*domain.TimeSlot
	confirmed map[int64]int
	links     map[int64]int
}

func (f *fakeSlots) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSlots) CountLinks(_ context.Context, slotID int64, onlyConfirmed bool) (int, error) {
	if onlyConfirmed {
		return f.confirmed[slotID], nil
	}
	return f.links[slotID], nil
}

func (f *fakeSlots) SetAvailability(_ context.Context, id int64, available bool) error {
	f.slots[id].IsAvailable = available
	return nil
}

func (f *fakeSlots) Delete(_ context.Context, id int64) error {
	delete(f.slots, id)
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newFake() *fakeSlots {
	return &fakeSlots{
		slots: map[int64]*domain.TimeSlot{
			1: {ID: 1, Capacity: 1, IsAvailable: true},
			2: {ID: 2, Capacity: 1, IsAvailable: true},
		},
		confirmed: map[int64]int{2: 1},
		links:     map[int64]int{2: 1},
	}
}

func TestSetAvailability(t *testing.T) {
	repo := newFake()
	svc := NewService(repo, fakeTx{}, logger.Nop{})

	slot, err := svc.SetAvailability(context.Background(), 1, false)
	require.NoError(t, err)
	assert.False(t, slot.IsAvailable)
	assert.False(t, repo.slots[1].IsAvailable)

	_, err = svc.SetAvailability(context.Background(), 2, false)
	assert.ErrorIs(t, err, ErrSlotHasBookings)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, repo.slots[2].IsAvailable)

	// no change requested
	slot, err = svc.SetAvailability(context.Background(), 2, true)
	require.NoError(t, err)
	assert.True(t, slot.IsAvailable)

	_, err = svc.SetAvailability(context.Background(), 3, false)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDelete(t *testing.T) {
	repo := newFake()
	svc := NewService(repo, fakeTx{}, logger.Nop{})

	err := svc.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, ErrSlotInUse)

	// completed bookings keep their links
	repo.confirmed[2] = 0
	err = svc.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, ErrSlotInUse)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.NotContains(t, repo.slots, int64(1))

	err = svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
