package db

import (
	"database/sql"
	"time"

	"github.com/sqlc-dev/pqtype"
)

type SyncStatus struct {
	SyncStatusID int32                 `json:"sync_status_id"`
	SyncItem     string                `json:"sync_item"`
	Timestamp    time.Time             `json:"timestamp"`
	Success      bool                  `json:"success"`
	Error        sql.NullString        `json:"error"`
	Details      pqtype.NullRawMessage `json:"details"`
	PublishedAt  sql.NullTime          `json:"published_at"`
}
