// source: queries.sql

package db

import (
	"context"
)

const getSyncStatus = `-- name: GetSyncStatus :one
SELECT sync_status_id, sync_item, timestamp, success, error, details, published_at
FROM sync_status
WHERE sync_status_id = $1
`

func (q *Queries) GetSyncStatus(ctx context.Context, syncStatusID int32) (SyncStatus, error) {
	row := q.db.QueryRowContext(ctx, getSyncStatus, syncStatusID)
	var i SyncStatus
	err := row.Scan(
		&i.SyncStatusID,
		&i.SyncItem,
		&i.Timestamp,
		&i.Success,
		&i.Error,
		&i.Details,
		&i.PublishedAt,
	)
	return i, err
}

const listUnpublishedSyncStatus = `-- name: ListUnpublishedSyncStatus :many
SELECT sync_status_id, sync_item, timestamp, success, error, details, published_at
FROM sync_status
WHERE published_at IS NULL
  AND success
  AND sync_item = $1
ORDER BY sync_status_id ASC
LIMIT $2
`

type ListUnpublishedSyncStatusParams struct {
	SyncItem string `json:"sync_item"`
	Limit    int32  `json:"limit"`
}

func (q *Queries) ListUnpublishedSyncStatus(ctx context.Context, arg ListUnpublishedSyncStatusParams) ([]SyncStatus, error) {
	rows, err := q.db.QueryContext(ctx, listUnpublishedSyncStatus, arg.SyncItem, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []SyncStatus
	for rows.Next() {
		var i SyncStatus
		if err := rows.Scan(
			&i.SyncStatusID,
			&i.SyncItem,
			&i.Timestamp,
			&i.Success,
			&i.Error,
			&i.Details,
			&i.PublishedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markSyncStatusPublished = `-- name: MarkSyncStatusPublished :exec
UPDATE sync_status
SET published_at = now()
WHERE sync_status_id = $1
`

func (q *Queries) MarkSyncStatusPublished(ctx context.Context, syncStatusID int32) error {
	_, err := q.db.ExecContext(ctx, markSyncStatusPublished, syncStatusID)
	return err
}
