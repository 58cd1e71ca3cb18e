package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishInvokesAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []Event
	failure := errors.New("handler failed")

	d.Subscribe(EventQuestionCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return failure
	})
	d.Subscribe(EventQuestionCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventQuestionDeleted, func(context.Context, Event) error {
		t.Fatal("unrelated handler invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventQuestionCreated, SubjectID: "1"})
	assert.ErrorIs(t, err, failure)
	require.Len(t, got, 2)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Timestamp.IsZero())
	assert.Equal(t, got[0].ID, got[1].ID)
}

func TestDispatcher_NoHandlers(t *testing.T) {
	assert.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventUserDeleted}))
	assert.NoError(t, NopDispatcher{}.Publish(context.Background(), Event{Type: EventUserDeleted}))
}
