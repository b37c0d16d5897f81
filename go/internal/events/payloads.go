package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types and wire envelope shared between the sync bridge and the gateway

const (
	// StreamName is the JetStream stream league events are stored in
	StreamName = "LEAGUE_EVENTS"

	// SubjectPrefix prefixes every league event subject: "league.events.{type}"
	SubjectPrefix = "league.events"

	// EventTypeTransactionsSynced is emitted after a successful transactions sync
	EventTypeTransactionsSynced = "TransactionsSynced"
)

// Subject returns the subject an event type is published on
func Subject(eventType string) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, eventType)
}

// Envelope wraps every event published to the league stream
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// TransactionsSyncedPayload is the payload for a TransactionsSynced event
type TransactionsSyncedPayload struct {
	SyncStatusID int             `json:"sync_status_id"`
	SyncItem     string          `json:"sync_item"`
	SyncedAt     time.Time       `json:"synced_at"`
	Details      json.RawMessage `json:"details,omitempty"`
}

// ParseEnvelope decodes an envelope from a message body
func ParseEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal event envelope: %w", err)
	}
	if env.EventType == "" {
		return Envelope{}, fmt.Errorf("event envelope has no type")
	}
	return env, nil
}
