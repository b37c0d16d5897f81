package transactions

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lhsffl/go/internal/models"
	"github.com/mcdev12/lhsffl/go/internal/transactions/db"
)

type fakeQuerier struct {
	db.Querier

	playerMoves []db.PlayerMoveRow
	pickMoves   []db.DraftPickMoveRow
	rosterMoves []db.RosterMoveRow
	teams       []db.Team
	results     []db.DraftResultRow

	playerIDs     []int32
	pickIDs       []int32
	gotPlayerArgs db.ListLaterTransactionIDsForPlayersParams
	gotPickArgs   db.ListLaterTransactionIDsForPicksParams
}

func (f *fakeQuerier) ListPlayerMoves(ctx context.Context, ids []int32) ([]db.PlayerMoveRow, error) {
	return f.playerMoves, nil
}

func (f *fakeQuerier) ListDraftPickMoves(ctx context.Context, ids []int32) ([]db.DraftPickMoveRow, error) {
	return f.pickMoves, nil
}

func (f *fakeQuerier) ListRosterMoves(ctx context.Context, ids []int32) ([]db.RosterMoveRow, error) {
	return f.rosterMoves, nil
}

func (f *fakeQuerier) ListLaterTransactionIDsForPlayers(ctx context.Context, arg db.ListLaterTransactionIDsForPlayersParams) ([]int32, error) {
	f.gotPlayerArgs = arg
	return f.playerIDs, nil
}

func (f *fakeQuerier) ListLaterTransactionIDsForPicks(ctx context.Context, arg db.ListLaterTransactionIDsForPicksParams) ([]int32, error) {
	f.gotPickArgs = arg
	return f.pickIDs, nil
}

func (f *fakeQuerier) ListTeamsByRosterIDs(ctx context.Context, rosterIDs []int32) ([]db.Team, error) {
	return f.teams, nil
}

func (f *fakeQuerier) ListDraftResults(ctx context.Context, arg db.ListDraftResultsParams) ([]db.DraftResultRow, error) {
	return f.results, nil
}

func validString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func validInt(n int32) sql.NullInt32 {
	return sql.NullInt32{Int32: n, Valid: true}
}

func TestLoadTransactions(t *testing.T) {
	created := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	q := &fakeQuerier{
		playerMoves: []db.PlayerMoveRow{
			{TransactionPlayerID: 1, TransactionID: 10, PlayerSleeperID: 100, SleeperRosterID: 1, Action: "add",
				TeamID: validInt(7), TeamName: validString("Team A"),
				PlayerID: validInt(55), FirstName: validString("Jane"), LastName: validString("Doe")},
			{TransactionPlayerID: 2, TransactionID: 10, PlayerSleeperID: 300, SleeperRosterID: 2, Action: "drop"},
			{TransactionPlayerID: 3, TransactionID: 99, PlayerSleeperID: 1, SleeperRosterID: 1, Action: "add"},
		},
		pickMoves: []db.DraftPickMoveRow{
			{TransactionDraftPickID: 1, TransactionID: 10, Season: 2024, Round: 2, RosterID: 1, OwnerID: validInt(2), PreviousOwnerID: validInt(1)},
		},
		rosterMoves: []db.RosterMoveRow{
			{TransactionRosterID: 1, TransactionID: 10, SleeperRosterID: 1, IsConsenter: true, TeamID: validInt(7), TeamName: validString("Team A")},
			{TransactionRosterID: 2, TransactionID: 10, SleeperRosterID: 2},
		},
	}

	txns, err := loadTransactions(context.Background(), q, []db.Transaction{{
		TransactionID: 10,
		Year:          2023,
		Type:          "trade",
		Status:        "complete",
		CreatedAt:     sql.NullTime{Time: created, Valid: true},
	}})

	require.NoError(t, err)
	require.Len(t, txns, 1)
	txn := txns[0]
	assert.Equal(t, 10, txn.TransactionID)
	assert.True(t, txn.IsTrade())
	assert.True(t, txn.CreatedAt.Equal(created))

	require.Len(t, txn.PlayerMoves, 2, "moves of other transactions are ignored")
	assert.Equal(t, "Jane Doe", txn.PlayerMoves[0].PlayerName())
	assert.Equal(t, "Team A", txn.PlayerMoves[0].Team.TeamName)
	assert.Nil(t, txn.PlayerMoves[1].Player)
	assert.Nil(t, txn.PlayerMoves[1].Team)

	require.Len(t, txn.DraftPickMoves, 1)
	assert.Equal(t, models.PickKey{Season: 2024, Round: 2, OriginalOwner: 1}, txn.DraftPickMoves[0].Key())
	assert.Equal(t, models.RosterID(2), txn.DraftPickMoves[0].OwnerID)

	assert.Equal(t, "Team A", txn.TeamNameFor(1))
	assert.Equal(t, "", txn.TeamNameFor(2))
}

func TestLaterTransactionIDs(t *testing.T) {
	origin := originTrade()
	q := &fakeQuerier{
		playerIDs: []int32{11, 12, 10},
		pickIDs:   []int32{12, 14},
	}

	ids, err := laterTransactionIDs(context.Background(), q, origin)

	require.NoError(t, err)
	assert.Equal(t, []int32{11, 12, 14}, ids)
	assert.Equal(t, []int64{100, 200}, q.gotPlayerArgs.PlayerIDs)
	assert.True(t, q.gotPlayerArgs.After.Equal(origin.CreatedAt.Time))
	assert.Equal(t, db.PickKeys{Seasons: []int32{2024}, Rounds: []int32{1}, Owners: []int32{1}}, q.gotPickArgs.Keys)
}

func TestTeamsAndDraftResults(t *testing.T) {
	q := &fakeQuerier{
		teams: []db.Team{{TeamID: 7, TeamName: "Team A", SleeperRosterID: 1}},
		results: []db.DraftResultRow{
			{Season: 2024, Round: 1, RosterID: 1, PickNo: 4, PlayerSleeperID: 500,
				FirstName: validString("Jane"), LastName: validString("Doe")},
		},
	}

	teams, err := teamsFor(context.Background(), q, originTrade())
	require.NoError(t, err)
	assert.Equal(t, map[models.RosterID]TeamInfo{1: {TeamID: 7, TeamName: "Team A"}}, teams)

	results, err := draftResultsFor(context.Background(), q, originTrade())
	require.NoError(t, err)
	meta := results[models.PickKey{Season: 2024, Round: 1, OriginalOwner: 1}]
	require.NotNil(t, meta.DraftedPlayer)
	assert.Equal(t, "Jane Doe", meta.DraftedPlayer.FullName())
	assert.Equal(t, models.PlayerID(500), meta.DraftedPlayer.SleeperID)
	assert.Equal(t, 4, *meta.PickNo)
}
