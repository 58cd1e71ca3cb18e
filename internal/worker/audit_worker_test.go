package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/peerprep/backend/internal/events"
)

func TestStartAuditWorker_LogsEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	StartAuditWorker(dispatcher, zap.New(core))

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:      events.EventUserPrivilegeChanged,
		ActorID:   "admin-1",
		SubjectID: "user-2",
		Payload:   events.PrivilegeChangedPayload{IsAdmin: true},
	})
	require.NoError(t, err)

	entries := logs.FilterMessage(string(events.EventUserPrivilegeChanged)).All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "admin-1", fields["actor_id"])
	assert.Equal(t, "user-2", fields["subject_id"])
	assert.Equal(t, "audit", entries[0].LoggerName)
}

func TestStartAuditWorker_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() { StartAuditWorker(nil, zap.NewNop()) })
}
