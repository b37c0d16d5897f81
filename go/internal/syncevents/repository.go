package syncevents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcdev12/lhsffl/go/internal/sqlutil"
	"github.com/mcdev12/lhsffl/go/internal/syncevents/db"
)

type Repository struct {
	queries db.Querier
}

func NewRepository(queries db.Querier) *Repository {
	return &Repository{
		queries: queries,
	}
}

var _ Store = (*Repository)(nil)

// GetEvent loads a sync_status row. ok is false when the row is missing or records a
// failed sync.
func (r *Repository) GetEvent(ctx context.Context, syncStatusID int32) (SyncEvent, bool, error) {
	row, err := r.queries.GetSyncStatus(ctx, syncStatusID)
	if errors.Is(err, sql.ErrNoRows) {
		return SyncEvent{}, false, nil
	}
	if err != nil {
		return SyncEvent{}, false, fmt.Errorf("failed to get sync status %d: %w", syncStatusID, err)
	}
	if !row.Success || row.PublishedAt.Valid {
		return SyncEvent{}, false, nil
	}
	return dbSyncStatusToEvent(row), true, nil
}

func (r *Repository) ListUnpublished(ctx context.Context, syncItem string, limit int32) ([]SyncEvent, error) {
	rows, err := r.queries.ListUnpublishedSyncStatus(ctx, db.ListUnpublishedSyncStatusParams{
		SyncItem: syncItem,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list unpublished sync status: %w", err)
	}

	events := make([]SyncEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, dbSyncStatusToEvent(row))
	}
	return events, nil
}

func (r *Repository) MarkPublished(ctx context.Context, syncStatusID int32) error {
	if err := r.queries.MarkSyncStatusPublished(ctx, syncStatusID); err != nil {
		return fmt.Errorf("failed to mark sync status %d published: %w", syncStatusID, err)
	}
	return nil
}

func dbSyncStatusToEvent(row db.SyncStatus) SyncEvent {
	return SyncEvent{
		SyncStatusID: row.SyncStatusID,
		SyncItem:     row.SyncItem,
		SyncedAt:     row.Timestamp,
		Details:      sqlutil.FromNullRawMessage(row.Details),
	}
}
