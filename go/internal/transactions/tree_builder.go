package transactions

import (
	"sort"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

// TeamInfo is the stored identity of a roster's team
type TeamInfo struct {
	TeamID   int
	TeamName string
}

// BuildTreeResponse shapes an origin transaction and the complete transactions that
// followed it into a full trade tree.
//
// Branches are seeded from the origin's roster participants. Origin adds and picks
// are credited to the receiving roster and become the tracked assets. Later
// transactions are walked oldest first; one that touches a tracked asset is appended
// to the branch of every roster that held or received it, and holders are updated.
// Rosters that were not part of the origin never get a branch, and an origin that moved
// nothing has no branches at all.
func BuildTreeResponse(
	origin models.Transaction,
	later []models.Transaction,
	teams map[models.RosterID]TeamInfo,
	draftResults map[models.PickKey]models.PickMetadata,
) *models.TreeResponse {
	origin.Normalize()

	resp := &models.TreeResponse{
		Success:      true,
		Origin:       origin,
		Teams:        make(map[string]models.TeamData, len(origin.RosterMoves)),
		PickMetadata: make(map[string]models.PickMetadata),
	}

	if len(origin.PlayerMoves) == 0 && len(origin.DraftPickMoves) == 0 {
		return resp
	}

	for _, rm := range origin.RosterMoves {
		resp.Teams[rm.RosterID.String()] = newTeamData(rm.RosterID, teams)
	}

	playerHolder := make(map[models.PlayerID]models.RosterID)
	pickHolder := make(map[models.PickKey]models.RosterID)

	for _, pm := range origin.PlayerMoves {
		if pm.Action != models.MoveActionAdd {
			continue
		}
		team, ok := resp.Teams[pm.RosterID.String()]
		if !ok {
			continue
		}
		team.AcquiredPlayers = append(team.AcquiredPlayers, pm.Descriptor())
		resp.Teams[pm.RosterID.String()] = team
		playerHolder[pm.PlayerID] = pm.RosterID
	}

	for _, dp := range origin.DraftPickMoves {
		key := dp.Key()
		if team, ok := resp.Teams[dp.OwnerID.String()]; ok {
			team.AcquiredPicks = append(team.AcquiredPicks, models.PickFromMove(dp))
			resp.Teams[dp.OwnerID.String()] = team
		}
		pickHolder[key] = dp.OwnerID

		meta := draftResults[key]
		resp.PickMetadata[key.String()] = meta
	}

	sorted := make([]models.Transaction, len(later))
	copy(sorted, later)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt.Time)
	})

	for _, txn := range sorted {
		if txn.TransactionID == origin.TransactionID {
			continue
		}
		if txn.Status != "" && txn.Status != models.TransactionStatusComplete {
			continue
		}
		if !origin.CreatedAt.IsZero() && !txn.CreatedAt.After(origin.CreatedAt.Time) {
			continue
		}
		txn.Normalize()

		affected := affectedRosters(txn, playerHolder, pickHolder)
		if len(affected) == 0 {
			continue
		}
		for _, rosterID := range affected {
			team, ok := resp.Teams[rosterID.String()]
			if !ok {
				continue
			}
			team.Transactions = append(team.Transactions, txn)
			resp.Teams[rosterID.String()] = team
		}
		updateHolders(txn, playerHolder, pickHolder)
	}

	resp.Normalize()
	return resp
}

func newTeamData(rosterID models.RosterID, teams map[models.RosterID]TeamInfo) models.TeamData {
	data := models.TeamData{
		TeamName:        rosterID.FallbackName(),
		RosterID:        rosterID,
		AcquiredPlayers: []models.PlayerInfo{},
		AcquiredPicks:   []models.DraftPick{},
		Transactions:    []models.Transaction{},
	}
	if info, ok := teams[rosterID]; ok {
		if info.TeamName != "" {
			data.TeamName = info.TeamName
		}
		if info.TeamID != 0 {
			id := info.TeamID
			data.TeamID = &id
		}
	}
	return data
}

// affectedRosters returns, in first-seen order, the rosters that held or received a
// tracked asset in txn
func affectedRosters(
	txn models.Transaction,
	playerHolder map[models.PlayerID]models.RosterID,
	pickHolder map[models.PickKey]models.RosterID,
) []models.RosterID {
	var out []models.RosterID
	seen := make(map[models.RosterID]bool)
	add := func(id models.RosterID) {
		if id == 0 || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
	}

	for _, pm := range txn.PlayerMoves {
		holder, tracked := playerHolder[pm.PlayerID]
		if !tracked {
			continue
		}
		add(holder)
		if pm.Action == models.MoveActionAdd {
			add(pm.RosterID)
		}
	}
	for _, dp := range txn.DraftPickMoves {
		holder, tracked := pickHolder[dp.Key()]
		if !tracked {
			continue
		}
		add(holder)
		add(dp.OwnerID)
	}
	return out
}

func updateHolders(
	txn models.Transaction,
	playerHolder map[models.PlayerID]models.RosterID,
	pickHolder map[models.PickKey]models.RosterID,
) {
	added := make(map[models.PlayerID]bool)
	for _, pm := range txn.PlayerMoves {
		if _, tracked := playerHolder[pm.PlayerID]; !tracked {
			continue
		}
		if pm.Action == models.MoveActionAdd {
			playerHolder[pm.PlayerID] = pm.RosterID
			added[pm.PlayerID] = true
		}
	}
	for _, pm := range txn.PlayerMoves {
		if _, tracked := playerHolder[pm.PlayerID]; !tracked || added[pm.PlayerID] {
			continue
		}
		if pm.Action == models.MoveActionDrop {
			playerHolder[pm.PlayerID] = 0
		}
	}
	for _, dp := range txn.DraftPickMoves {
		key := dp.Key()
		if _, tracked := pickHolder[key]; tracked {
			pickHolder[key] = dp.OwnerID
		}
	}
}
