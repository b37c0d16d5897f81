package transactions

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

func ts(s string) models.Timestamp {
	t, err := models.ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return t
}

func info(id models.PlayerID, first, last string) *models.PlayerInfo {
	return &models.PlayerInfo{SleeperID: id, FirstName: first, LastName: last}
}

func add(id models.PlayerID, roster models.RosterID) models.PlayerMove {
	return models.PlayerMove{PlayerID: id, RosterID: roster, Action: models.MoveActionAdd}
}

func drop(id models.PlayerID, roster models.RosterID) models.PlayerMove {
	return models.PlayerMove{PlayerID: id, RosterID: roster, Action: models.MoveActionDrop}
}

func rosters(ids ...models.RosterID) []models.RosterParticipant {
	out := make([]models.RosterParticipant, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.RosterParticipant{RosterID: id})
	}
	return out
}

type txnOption func(*models.Transaction)

func withMoves(moves ...models.PlayerMove) txnOption {
	return func(t *models.Transaction) { t.PlayerMoves = append(t.PlayerMoves, moves...) }
}

func withPickMoves(moves ...models.DraftPickMove) txnOption {
	return func(t *models.Transaction) { t.DraftPickMoves = append(t.DraftPickMoves, moves...) }
}

func withRosters(ids ...models.RosterID) txnOption {
	return func(t *models.Transaction) { t.RosterMoves = append(t.RosterMoves, rosters(ids...)...) }
}

func complete(id int, typ models.TransactionType, created string, opts ...txnOption) models.Transaction {
	txn := models.Transaction{
		TransactionID: id,
		Type:          typ,
		Status:        models.TransactionStatusComplete,
		CreatedAt:     ts(created),
	}
	for _, opt := range opts {
		opt(&txn)
	}
	return txn
}

func pending(id int, created string, opts ...txnOption) models.Transaction {
	txn := complete(id, models.TransactionTypeTrade, created, opts...)
	txn.Status = "pending"
	return txn
}

// originTrade: roster 1 gets player 100, roster 2 gets player 200 and roster 1's 2024 1st
func originTrade() models.Transaction {
	return models.Transaction{
		TransactionID: 10,
		Type:          models.TransactionTypeTrade,
		Status:        models.TransactionStatusComplete,
		CreatedAt:     ts("2023-01-01T00:00:00"),
		PlayerMoves: []models.PlayerMove{
			add(100, 1), drop(100, 2),
			add(200, 2), drop(200, 1),
		},
		DraftPickMoves: []models.DraftPickMove{
			{Season: 2024, Round: 1, RosterID: 1, OwnerID: 2, PreviousOwnerID: 1},
		},
		RosterMoves: []models.RosterParticipant{
			{RosterID: 1, Team: &models.TeamRef{TeamName: "Team A", RosterID: 1}},
			{RosterID: 2},
		},
	}
}

type fakeTreeSource struct {
	mu    sync.Mutex
	trees map[int]*models.TreeResponse
	err   error
	calls []int
	delay time.Duration
}

func (f *fakeTreeSource) GetFullTradeTree(ctx context.Context, transactionID int) (*models.TreeResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, transactionID)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	tree, ok := f.trees[transactionID]
	if !ok {
		return nil, ErrNotFound
	}
	// each caller gets its own copy, as from a fresh decode
	b, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}
	var cp models.TreeResponse
	if err := json.Unmarshal(b, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

type fakeTradeSource struct {
	trades map[int][]models.Transaction
}

func (f *fakeTradeSource) GetTeamTrades(ctx context.Context, teamID int) ([]models.Transaction, error) {
	trades, ok := f.trades[teamID]
	if !ok {
		return nil, ErrNotFound
	}
	return trades, nil
}
