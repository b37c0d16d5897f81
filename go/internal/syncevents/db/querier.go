package db

import (
	"context"
)

type Querier interface {
	GetSyncStatus(ctx context.Context, syncStatusID int32) (SyncStatus, error)
	ListUnpublishedSyncStatus(ctx context.Context, arg ListUnpublishedSyncStatusParams) ([]SyncStatus, error)
	MarkSyncStatusPublished(ctx context.Context, syncStatusID int32) error
}

var _ Querier = (*Queries)(nil)
