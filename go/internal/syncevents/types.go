package syncevents

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// syncEventNamespace scopes the deterministic ids of sync events
var syncEventNamespace = uuid.MustParse("6f1c2d0e-8a4b-4c55-9d0e-3b7a1f2e9c41")

// SyncEvent is one successful sync recorded in sync_status
type SyncEvent struct {
	SyncStatusID int32
	SyncItem     string
	SyncedAt     time.Time
	Details      json.RawMessage
}

// EventID is stable for a sync_status row so a republished row is de-duplicated by
// the stream.
func (e SyncEvent) EventID() string {
	return uuid.NewSHA1(syncEventNamespace, []byte("sync_status:"+strconv.Itoa(int(e.SyncStatusID)))).String()
}

// Publisher publishes sync events
type Publisher interface {
	Publish(ctx context.Context, event SyncEvent) error
}

// Store reads sync_status rows and records their publication
type Store interface {
	GetEvent(ctx context.Context, syncStatusID int32) (SyncEvent, bool, error)
	ListUnpublished(ctx context.Context, syncItem string, limit int32) ([]SyncEvent, error)
	MarkPublished(ctx context.Context, syncStatusID int32) error
}
