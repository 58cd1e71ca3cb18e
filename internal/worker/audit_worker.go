package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/peerprep/backend/internal/events"
)

// AuditedEvents lists the event types written to the audit log.
var AuditedEvents = []events.EventType{
	events.EventUserRegistered,
	events.EventUserDeleted,
	events.EventUserPrivilegeChanged,
	events.EventUserLocked,
	events.EventPasswordResetRequested,
	events.EventQuestionCreated,
	events.EventQuestionUpdated,
	events.EventQuestionDeleted,
}

// StartAuditWorker subscribes a structured audit logger to every audited event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	for _, eventType := range AuditedEvents {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			audit.Info(string(e.Type),
				zap.String("event_id", e.ID),
				zap.String("actor_id", e.ActorID),
				zap.String("subject_id", e.SubjectID),
				zap.Time("at", e.Timestamp),
				zap.Any("payload", e.Payload),
			)
			return nil
		})
	}
}
