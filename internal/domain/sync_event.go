package domain

import (
	"github.com/google/uuid"
)

// SyncEventState is the delivery state of a queued sync event.
type SyncEventState string

// Possible sync event states
const (
	SyncEventPending SyncEventState = "PENDING"
	SyncEventSent    SyncEventState = "SENT"
	SyncEventFailed  SyncEventState = "FAILED"
)

// Sync event types produced by the study service.
const (
	SyncEventTypeAttempt      = "ATTEMPT"
	SyncEventTypeSessionEnd   = "SESSION_END"
	SyncEventTypeSessionAbort = "SESSION_ABORT"
)

// SyncEvent is an analytics-like record queued for upload. The background
// flusher transitions events from PENDING to SENT; no actual network
// transmission happens in this codebase.
type SyncEvent struct {
	EventID     string         `json:"event_id"`
	Type        string         `json:"type"`
	PayloadJSON string         `json:"payload_json"`
	CreatedAtMs int64          `json:"created_at_ms"`
	State       SyncEventState `json:"state"`
}

// NewSyncEvent creates a pending event with a fresh ID.
func NewSyncEvent(eventType, payloadJSON string, nowMs int64) SyncEvent {
	return SyncEvent{
		EventID:     uuid.New().String(),
		Type:        eventType,
		PayloadJSON: payloadJSON,
		CreatedAtMs: nowMs,
		State:       SyncEventPending,
	}
}
