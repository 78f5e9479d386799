package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	"github.com/m04kA/SMC-DockBookingService/pkg/ptr"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testBooking() *domain.Booking {
	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:              10,
		UserID:          3,
		FacilityID:      1,
		Direction:       domain.DirectionInbound,
		Status:          domain.StatusConfirmed,
		TransportTypeID: ptr.Ptr(int64(5)),
		Cubes:           ptr.Ptr(12.5),
		Slots: []*domain.TimeSlot{
			{ID: 100, DockID: 7, Date: date, StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("09:30")},
			{ID: 101, DockID: 7, Date: date, StartTime: types.MustTimeString("09:30"), EndTime: types.MustTimeString("10:00")},
		},
	}
}

func TestPublisher_BookingCreated(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "docks", time.Second)
	p.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, p.BookingCreated(context.Background(), testBooking()))
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, "docks", sent.exchange)
	assert.Equal(t, RoutingBookingCreated, sent.key)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
	assert.NotEmpty(t, sent.msg.MessageId)

	var event BookingEvent
	require.NoError(t, json.Unmarshal(sent.msg.Body, &event))
	assert.Equal(t, sent.msg.MessageId, event.EventID)
	assert.Equal(t, int64(10), event.BookingID)
	assert.Equal(t, "in", event.Direction)
	assert.Equal(t, []int64{100, 101}, event.SlotIDs)
	require.NotNil(t, event.DockID)
	assert.Equal(t, int64(7), *event.DockID)
	assert.Equal(t, "2025-03-03", event.Date)
	assert.Equal(t, "09:00", event.StartTime)
	assert.Equal(t, "10:00", event.EndTime)
}

func TestPublisher_BookingCancelledWithoutSlots(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, "docks", 0)

	b := testBooking()
	b.Status = domain.StatusCancelled
	b.Slots = nil
	require.NoError(t, p.BookingCancelled(context.Background(), b))

	var event BookingEvent
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &event))
	assert.Equal(t, RoutingBookingCancelled, ch.sent[0].key)
	assert.Equal(t, "cancelled", event.Status)
	assert.Nil(t, event.DockID)
	assert.Empty(t, event.SlotIDs)
}

func TestPublisher_Error(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newPublisher(ch, "docks", time.Second)

	err := p.BookingCreated(context.Background(), testBooking())
	assert.ErrorIs(t, err, ErrPublish)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
