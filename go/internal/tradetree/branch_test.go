package tradetree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

var clock = clockwork.NewFakeClockAt(at("2024-01-01T00:00:00"))

func team(id models.RosterID, players []models.PlayerInfo, picks []models.DraftPick, txns ...models.Transaction) models.TeamData {
	return models.TeamData{
		TeamName:        teamNames[id],
		RosterID:        id,
		AcquiredPlayers: players,
		AcquiredPicks:   picks,
		Transactions:    txns,
	}
}

func tree(origin models.Transaction, teams ...models.TeamData) models.TreeResponse {
	t := models.TreeResponse{
		Success:      true,
		Origin:       origin,
		Teams:        map[string]models.TeamData{},
		PickMetadata: map[string]models.PickMetadata{},
	}
	for _, td := range teams {
		t.Teams[td.RosterID.String()] = td
	}
	t.Normalize()
	return t
}

// originTrade sends Jane Doe and a 2024 1st to A, John Smith to B
func originTrade() models.Transaction {
	return txn(1, models.TransactionTypeTrade, "2023-01-01T00:00:00",
		withRosters(rosterA, rosterB),
		withPlayers(
			move(models.MoveActionDrop, janeDoe, rosterB),
			move(models.MoveActionAdd, janeDoe, rosterA),
			move(models.MoveActionDrop, johnSmith, rosterA),
			move(models.MoveActionAdd, johnSmith, rosterB),
		),
		withPicks(pickMove(2024, 1, rosterB, rosterB, rosterA)))
}

func TestAssembleBranches_HeldWithNoFurtherMoves(t *testing.T) {
	origin := txn(1, models.TransactionTypeTrade, "2023-01-01T00:00:00", withRosters(rosterA))
	in := tree(origin, team(rosterA, []models.PlayerInfo{janeDoe}, nil))

	branches := AssembleBranches(in, clock.Now())

	require.Len(t, branches, 1)
	require.Len(t, branches[0].Assets, 1)
	asset := branches[0].Assets[0]
	assert.Equal(t, "Jane Doe", asset.Label)
	assert.Empty(t, asset.Timeline)
	assert.Equal(t, TerminalHeld, asset.Terminal.Kind)
	assert.Equal(t, "Held by Team A", asset.Terminal.Label)
	assert.Equal(t, "1 yr", asset.Terminal.Duration)
}

func TestAssembleBranches_TradedToAnotherBranch(t *testing.T) {
	later := txn(2, models.TransactionTypeTrade, "2023-06-01T00:00:00",
		withRosters(rosterA, rosterB),
		withPlayers(move(models.MoveActionDrop, janeDoe, rosterA), move(models.MoveActionAdd, janeDoe, rosterB)))
	in := tree(originTrade(),
		team(rosterA, []models.PlayerInfo{janeDoe}, nil, later),
		team(rosterB, []models.PlayerInfo{johnSmith}, nil, later),
	)

	branches := AssembleBranches(in, clock.Now())
	require.Len(t, branches, 2)

	a := branches[0]
	require.Equal(t, rosterA, a.RosterID)
	require.Len(t, a.Assets, 1)
	assert.Equal(t, TerminalTraded, a.Assets[0].Terminal.Kind)
	assert.Contains(t, a.Assets[0].Terminal.Label, "Team B")
	assert.Equal(t, "5 mos", a.Assets[0].Terminal.Duration)
	require.Len(t, a.Assets[0].Timeline, 1)
	assert.Equal(t, "Traded Jane Doe to Team B", a.Assets[0].Timeline[0].Narration.Headline)
	assert.Equal(t, "JUN 1, 2023", a.Assets[0].Timeline[0].DateLabel)

	b := branches[1]
	require.Equal(t, rosterB, b.RosterID)
	require.Len(t, b.Assets, 2)
	assert.Equal(t, johnSmith.SleeperID, b.Assets[0].Asset.PlayerID())
	assert.Equal(t, janeDoe.SleeperID, b.Assets[1].Asset.PlayerID())
	assert.Equal(t, at("2023-06-01T00:00:00"), b.Assets[1].Asset.AcquiredDate)
	assert.Equal(t, TerminalHeld, b.Assets[1].Terminal.Kind)
	assert.Equal(t, "Still on roster", b.Assets[1].Terminal.Subtitle)
}

func TestAssembleBranches_PickResolvedFromMetadata(t *testing.T) {
	pick := models.DraftPick{Season: 2024, Round: 1, OriginalOwner: rosterA}
	in := tree(originTrade(), team(rosterA, nil, []models.DraftPick{pick}))
	drafted := models.PlayerInfo{FirstName: "Jane", LastName: "Doe"}
	in.PickMetadata["2024:1:1"] = models.PickMetadata{DraftedPlayer: &drafted}

	branches := AssembleBranches(in, clock.Now())

	require.Len(t, branches, 1)
	require.Len(t, branches[0].Assets, 1)
	terminal := branches[0].Assets[0].Terminal
	assert.Equal(t, TerminalDrafted, terminal.Kind)
	require.NotNil(t, terminal.DraftedPlayer)
	assert.Equal(t, "Jane Doe", terminal.DraftedPlayer.FullName())
	assert.Equal(t, "2024 1st Round Pick", branches[0].Assets[0].Label)
}

func TestAssembleBranches_ReleasedOnWaivers(t *testing.T) {
	origin := txn(1, models.TransactionTypeTrade, "2023-01-01T00:00:00", withRosters(rosterC))
	waiver := txn(2, models.TransactionTypeWaiver, "2023-03-01T00:00:00",
		withRosters(rosterC),
		withPlayers(move(models.MoveActionDrop, johnSmith, rosterC)))
	in := tree(origin, team(rosterC, []models.PlayerInfo{johnSmith}, nil, waiver))

	branches := AssembleBranches(in, clock.Now())

	require.Len(t, branches, 1)
	terminal := branches[0].Assets[0].Terminal
	assert.Equal(t, TerminalReleased, terminal.Kind)
	assert.Equal(t, "Released", terminal.Label)
	assert.Empty(t, terminal.Counterparties)
	assert.Equal(t, "Dropped John Smith", branches[0].Assets[0].Timeline[0].Narration.Headline)
}

func TestAssembleBranches_EmptyTeams(t *testing.T) {
	in := tree(originTrade())

	branches := AssembleBranches(in, clock.Now())

	require.NotNil(t, branches)
	assert.Empty(t, branches)
}

func TestAssembleBranches_UnknownRosterUsesFallbackLabel(t *testing.T) {
	later := txn(2, models.TransactionTypeTrade, "2023-06-01T00:00:00",
		withRosters(rosterA, rosterD),
		withPlayers(
			move(models.MoveActionDrop, janeDoe, rosterA),
			models.PlayerMove{PlayerID: janeDoe.SleeperID, RosterID: rosterD, Action: models.MoveActionAdd},
		))
	in := tree(originTrade(), team(rosterA, []models.PlayerInfo{janeDoe}, nil, later))

	branches := AssembleBranches(in, clock.Now())

	require.Len(t, branches, 1)
	asset := branches[0].Assets[0]
	assert.Equal(t, "Traded to Roster 4", asset.Terminal.Label)
	desc := asset.Timeline[0].Description
	require.Len(t, desc.PerTeam, 2)
	assert.Equal(t, "Roster 4", desc.PerTeam[0].TeamName)
	assert.Equal(t, rosterA, desc.PerTeam[1].RosterID, "branch roster sorts last")
}

func TestAssembleBranches_ThreeTeamTradeAfterDeparture(t *testing.T) {
	origin := txn(1, models.TransactionTypeTrade, "2023-01-01T00:00:00",
		withRosters(rosterA, rosterD),
		withPlayers(
			move(models.MoveActionAdd, janeDoe, rosterA),
			move(models.MoveActionAdd, maxPower, rosterA),
		))
	toB := txn(2, models.TransactionTypeTrade, "2023-03-01T00:00:00",
		withRosters(rosterA, rosterB),
		withPlayers(move(models.MoveActionDrop, janeDoe, rosterA), move(models.MoveActionAdd, janeDoe, rosterB)))
	threeWay := txn(3, models.TransactionTypeTrade, "2023-08-01T00:00:00",
		withRosters(rosterA, rosterB, rosterC),
		withPlayers(
			move(models.MoveActionDrop, janeDoe, rosterB),
			move(models.MoveActionAdd, janeDoe, rosterC),
			move(models.MoveActionDrop, maxPower, rosterA),
			move(models.MoveActionAdd, maxPower, rosterC),
		))
	in := tree(origin, team(rosterA, []models.PlayerInfo{janeDoe, maxPower}, nil, toB, threeWay))

	branches := AssembleBranches(in, clock.Now())

	require.Len(t, branches, 1)
	require.Len(t, branches[0].Assets, 2)
	jane := branches[0].Assets[0]
	assert.Equal(t, TerminalTraded, jane.Terminal.Kind)
	assert.Equal(t, "Traded to Team B", jane.Terminal.Label)
	assert.Len(t, jane.Timeline, 2)
	maxed := branches[0].Assets[1]
	assert.Equal(t, TerminalTraded, maxed.Terminal.Kind)
	assert.Equal(t, "Traded to Team B & Team C", maxed.Terminal.Label)
}

func TestAssembleBranches_TeamNameFromOriginWhenMissing(t *testing.T) {
	origin := txn(1, models.TransactionTypeTrade, "2023-01-01T00:00:00", withRosters(rosterA))
	in := tree(origin, models.TeamData{RosterID: rosterA, AcquiredPlayers: []models.PlayerInfo{janeDoe}})

	branches := AssembleBranches(in, clock.Now())

	require.Len(t, branches, 1)
	assert.Equal(t, "Team A", branches[0].TeamName)
	assert.Equal(t, "Held by Team A", branches[0].Assets[0].Terminal.Label)
}

func TestAssembleBranches_KeepsEmptyBranches(t *testing.T) {
	in := tree(originTrade(), team(rosterA, nil, nil), team(rosterB, []models.PlayerInfo{johnSmith}, nil))

	branches := AssembleBranches(in, clock.Now())

	require.Len(t, branches, 2)
	assert.True(t, branches[0].Empty())
	assert.Equal(t, NoRippleEffects, branches[0].Status())
	assert.False(t, branches[1].Empty())
}

func TestAssembleBranches_SortsTransactions(t *testing.T) {
	drop := txn(3, models.TransactionTypeFreeAgent, "2023-09-01T00:00:00",
		withPlayers(move(models.MoveActionDrop, janeDoe, rosterA)))
	add := txn(2, models.TransactionTypeFreeAgent, "2023-03-01T00:00:00",
		withPlayers(move(models.MoveActionAdd, maxPower, rosterA)))
	in := tree(originTrade(), team(rosterA, []models.PlayerInfo{janeDoe}, nil, drop, add))

	branches := AssembleBranches(in, clock.Now())

	require.Len(t, branches[0].Assets, 2)
	assert.Equal(t, TerminalReleased, branches[0].Assets[0].Terminal.Kind)
	assert.Equal(t, "8 mos", branches[0].Assets[0].Terminal.Duration)
	assert.Equal(t, maxPower.SleeperID, branches[0].Assets[1].Asset.PlayerID())
}

func TestBuildTradeTree_Idempotent(t *testing.T) {
	later := txn(2, models.TransactionTypeTrade, "2023-06-01T00:00:00",
		withRosters(rosterA, rosterB),
		withPlayers(move(models.MoveActionDrop, janeDoe, rosterA), move(models.MoveActionAdd, janeDoe, rosterB)))
	in := tree(originTrade(),
		team(rosterA, []models.PlayerInfo{janeDoe}, []models.DraftPick{{Season: 2024, Round: 1, OriginalOwner: rosterB}}, later),
		team(rosterB, []models.PlayerInfo{johnSmith}, nil, later),
	)

	first := BuildTradeTree(in, clock.Now())
	second := BuildTradeTree(in, clock.Now())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestBuildTradeTree_Header(t *testing.T) {
	in := tree(originTrade(),
		team(rosterA, []models.PlayerInfo{janeDoe}, []models.DraftPick{{Season: 2024, Round: 1, OriginalOwner: rosterB}}),
		team(rosterB, []models.PlayerInfo{johnSmith}, nil),
	)

	tt := BuildTradeTree(in, clock.Now())

	assert.Equal(t, 1, tt.OriginID)
	assert.Equal(t, "Team A & Team B", tt.Title)
	assert.Equal(t, "JAN 1, 2023", tt.DateLabel)
	require.Len(t, tt.Origin, 2)
	assert.Equal(t, "Team A", tt.Origin[0].TeamName)
	assert.Equal(t, []models.PlayerInfo{janeDoe}, tt.Origin[0].Players)
	assert.Equal(t, []string{"2024 1st Round Pick"}, tt.Origin[0].PickLabels)
	assert.Equal(t, []models.PlayerInfo{johnSmith}, tt.Origin[1].Players)
	assert.Len(t, tt.Branches, 2)
}

func TestSummarizeOrigin_SkipsIdleRostersAndUnknownPickOwners(t *testing.T) {
	origin := txn(1, models.TransactionTypeTrade, "2023-01-01T00:00:00",
		withRosters(rosterA, rosterB),
		withPlayers(models.PlayerMove{PlayerID: 555, RosterID: rosterD, Action: models.MoveActionAdd}),
		withPicks(pickMove(2024, 1, rosterC, rosterA, rosterC)))

	summary := SummarizeOrigin(origin)

	require.Len(t, summary, 1)
	assert.Equal(t, rosterD, summary[0].RosterID)
	assert.Equal(t, "Roster 4", summary[0].TeamName)
	assert.Equal(t, "Player 555", summary[0].Players[0].FullName())
}
