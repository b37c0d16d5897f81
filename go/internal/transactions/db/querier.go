package db

import (
	"context"
	"time"
)

type Querier interface {
	GetTransaction(ctx context.Context, transactionID int32) (Transaction, error)
	ListTransactionsByIDs(ctx context.Context, ids []int32) ([]Transaction, error)
	ListPlayerMoves(ctx context.Context, transactionIDs []int32) ([]PlayerMoveRow, error)
	ListDraftPickMoves(ctx context.Context, transactionIDs []int32) ([]DraftPickMoveRow, error)
	ListRosterMoves(ctx context.Context, transactionIDs []int32) ([]RosterMoveRow, error)
	ListLaterTransactionIDsForPlayers(ctx context.Context, arg ListLaterTransactionIDsForPlayersParams) ([]int32, error)
	ListLaterTransactionIDsForPicks(ctx context.Context, arg ListLaterTransactionIDsForPicksParams) ([]int32, error)
	ListTeamsByRosterIDs(ctx context.Context, rosterIDs []int32) ([]Team, error)
	GetTeam(ctx context.Context, teamID int32) (Team, error)
	ListTradeIDsForRoster(ctx context.Context, rosterID int32) ([]int32, error)
	ListDraftResults(ctx context.Context, arg ListDraftResultsParams) ([]DraftResultRow, error)
}

type ListLaterTransactionIDsForPlayersParams struct {
	After     time.Time
	PlayerIDs []int64
}

// PickKeys are parallel arrays of (season, round, original owner)
type PickKeys struct {
	Seasons []int32
	Rounds  []int32
	Owners  []int32
}

type ListLaterTransactionIDsForPicksParams struct {
	After time.Time
	Keys  PickKeys
}

type ListDraftResultsParams struct {
	Keys PickKeys
}

var _ Querier = (*Queries)(nil)
