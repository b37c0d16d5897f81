package tradetree

import (
	"time"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

const (
	rosterA models.RosterID = 1
	rosterB models.RosterID = 2
	rosterC models.RosterID = 3
	rosterD models.RosterID = 4
)

var teamNames = map[models.RosterID]string{
	rosterA: "Team A",
	rosterB: "Team B",
	rosterC: "Team C",
}

func at(s string) time.Time {
	ts, err := models.ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return ts.Time
}

func stamp(s string) models.Timestamp {
	return models.NewTimestamp(at(s))
}

func intPtr(n int) *int {
	return &n
}

func player(id models.PlayerID, first, last string) models.PlayerInfo {
	return models.PlayerInfo{SleeperID: id, FirstName: first, LastName: last, Position: "WR"}
}

func teamRef(id models.RosterID) *models.TeamRef {
	name, ok := teamNames[id]
	if !ok {
		return nil
	}
	return &models.TeamRef{TeamName: name, RosterID: id}
}

func participant(id models.RosterID) models.RosterParticipant {
	return models.RosterParticipant{RosterID: id, Team: teamRef(id)}
}

func move(action models.MoveAction, p models.PlayerInfo, roster models.RosterID) models.PlayerMove {
	return models.PlayerMove{
		PlayerID: p.SleeperID,
		RosterID: roster,
		Action:   action,
		Team:     teamRef(roster),
		Player:   &p,
	}
}

func pickMove(season, round int, original, from, to models.RosterID) models.DraftPickMove {
	return models.DraftPickMove{
		Season:          season,
		Round:           round,
		RosterID:        original,
		OwnerID:         to,
		PreviousOwnerID: from,
	}
}

type txnOption func(*models.Transaction)

func withPlayers(moves ...models.PlayerMove) txnOption {
	return func(t *models.Transaction) { t.PlayerMoves = append(t.PlayerMoves, moves...) }
}

func withPicks(moves ...models.DraftPickMove) txnOption {
	return func(t *models.Transaction) { t.DraftPickMoves = append(t.DraftPickMoves, moves...) }
}

func withRosters(ids ...models.RosterID) txnOption {
	return func(t *models.Transaction) {
		for _, id := range ids {
			t.RosterMoves = append(t.RosterMoves, participant(id))
		}
	}
}

func txn(id int, kind models.TransactionType, when string, opts ...txnOption) models.Transaction {
	t := models.Transaction{
		TransactionID:  id,
		Type:           kind,
		Status:         models.TransactionStatusComplete,
		CreatedAt:      stamp(when),
		PlayerMoves:    []models.PlayerMove{},
		DraftPickMoves: []models.DraftPickMove{},
		RosterMoves:    []models.RosterParticipant{},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

var (
	janeDoe   = player(100, "Jane", "Doe")
	johnSmith = player(200, "John", "Smith")
	maxPower  = player(300, "Max", "Power")
)
