package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user.registered"
	EventUserDeleted            EventType = "user.deleted"
	EventUserPrivilegeChanged   EventType = "user.privilege_changed"
	EventUserLocked             EventType = "user.locked"
	EventPasswordResetRequested EventType = "user.password_reset_requested"
	EventQuestionCreated        EventType = "question.created"
	EventQuestionUpdated        EventType = "question.updated"
	EventQuestionDeleted        EventType = "question.deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// PrivilegeChangedPayload payload.
type PrivilegeChangedPayload struct {
	IsAdmin bool `json:"is_admin"`
}

// QuestionPayload payload.
type QuestionPayload struct {
	Title      string `json:"title"`
	Difficulty string `json:"difficulty,omitempty"`
}
