package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPublishSubscribe(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []Event
	d.Subscribe(EventStaffCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "1", Type: EventStaffCreated, RecordID: "r1"})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "r1", seen[0].RecordID)

	// events without a subscriber are dropped silently
	err = d.Publish(context.Background(), Event{ID: "2", Type: EventStaffDeleted})
	require.NoError(t, err)
	assert.Len(t, seen, 1)
}

func TestDispatcherHandlerErrorDoesNotPropagate(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventStaffUpdated, func(context.Context, Event) error {
		calls++
		return errors.New("boom")
	})
	d.Subscribe(EventStaffUpdated, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventStaffUpdated})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "later handlers still run after a failure")
}
