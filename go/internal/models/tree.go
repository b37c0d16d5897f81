package models

import (
	"sort"
	"strconv"
)

// TreeResponse is the full trade tree payload for one origin transaction
type TreeResponse struct {
	Success      bool                    `json:"success"`
	Error        string                  `json:"error,omitempty"`
	Origin       Transaction             `json:"origin"`
	Teams        map[string]TeamData     `json:"teams"`
	PickMetadata map[string]PickMetadata `json:"pick_metadata"`
}

// TeamData is one branch of the tree as shaped by the server
type TeamData struct {
	TeamID          *int          `json:"team_id,omitempty"`
	TeamName        string        `json:"team_name"`
	RosterID        RosterID      `json:"sleeper_roster_id"`
	AcquiredPlayers []PlayerInfo  `json:"acquired_players"`
	AcquiredPicks   []DraftPick   `json:"acquired_picks"`
	Transactions    []Transaction `json:"transactions"`
}

// RosterIDs returns the tree's branch roster ids in ascending order. Keys that are
// not numeric fall back to the branch's own roster id.
func (t *TreeResponse) RosterIDs() []RosterID {
	ids := make([]RosterID, 0, len(t.Teams))
	for key, team := range t.Teams {
		id, err := ParseRosterID(key)
		if err != nil {
			id = team.RosterID
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Team returns the branch for a roster id
func (t *TreeResponse) Team(rosterID RosterID) (TeamData, bool) {
	if team, ok := t.Teams[rosterID.String()]; ok {
		return team, true
	}
	for _, team := range t.Teams {
		if team.RosterID == rosterID {
			return team, true
		}
	}
	return TeamData{}, false
}

// TeamNames maps every branch roster to its display name
func (t *TreeResponse) TeamNames() map[RosterID]string {
	names := make(map[RosterID]string, len(t.Teams))
	for _, team := range t.Teams {
		if team.TeamName != "" {
			names[team.RosterID] = team.TeamName
		}
	}
	return names
}

// DraftedPlayerFor resolves the player drafted with a pick from pick metadata
func (t *TreeResponse) DraftedPlayerFor(key PickKey) *PlayerInfo {
	meta, ok := t.PickMetadata[key.String()]
	if !ok {
		return nil
	}
	return meta.DraftedPlayer
}

// Normalize applies the default-substitution rules for fields the server may omit:
//   - nil slices and maps become empty
//   - a branch without a roster id takes it from its map key
//   - a branch without a name is labelled "Roster {id}"
//   - acquired players without a name are labelled "Player {id}"
//   - transaction participants and moves are normalized in place
func (t *TreeResponse) Normalize() {
	if t.Teams == nil {
		t.Teams = map[string]TeamData{}
	}
	if t.PickMetadata == nil {
		t.PickMetadata = map[string]PickMetadata{}
	}
	t.Origin.Normalize()

	for key, team := range t.Teams {
		if team.RosterID == 0 {
			if id, err := ParseRosterID(key); err == nil {
				team.RosterID = id
			}
		}
		if team.TeamName == "" {
			team.TeamName = team.RosterID.FallbackName()
		}
		if team.AcquiredPlayers == nil {
			team.AcquiredPlayers = []PlayerInfo{}
		}
		for i, p := range team.AcquiredPlayers {
			if p.FirstName == "" && p.LastName == "" {
				team.AcquiredPlayers[i].FirstName = "Player"
				team.AcquiredPlayers[i].LastName = strconv.FormatInt(int64(p.SleeperID), 10)
			}
		}
		if team.AcquiredPicks == nil {
			team.AcquiredPicks = []DraftPick{}
		}
		if team.Transactions == nil {
			team.Transactions = []Transaction{}
		}
		for i := range team.Transactions {
			team.Transactions[i].Normalize()
		}
		t.Teams[key] = team
	}
}

// Normalize replaces nil move lists with empty ones
func (t *Transaction) Normalize() {
	if t.PlayerMoves == nil {
		t.PlayerMoves = []PlayerMove{}
	}
	if t.DraftPickMoves == nil {
		t.DraftPickMoves = []DraftPickMove{}
	}
	if t.RosterMoves == nil {
		t.RosterMoves = []RosterParticipant{}
	}
}
