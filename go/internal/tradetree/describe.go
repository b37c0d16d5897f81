package tradetree

import (
	"time"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

// Names maps roster ids to display names known outside a single transaction
type Names map[models.RosterID]string

// Resolve names a roster as seen from txn: the participant's team, then a player
// move's team, then the known names, then "Roster {id}".
func (n Names) Resolve(txn models.Transaction, id models.RosterID) string {
	if name := txn.TeamNameFor(id); name != "" {
		return name
	}
	if name := n[id]; name != "" {
		return name
	}
	return id.FallbackName()
}

// TeamActivity is everything one roster gained or gave up in a transaction
type TeamActivity struct {
	RosterID       models.RosterID     `json:"sleeper_roster_id"`
	TeamName       string              `json:"team_name"`
	PlayersAdded   []models.PlayerInfo `json:"players_added"`
	PlayersDropped []models.PlayerInfo `json:"players_dropped"`
	PicksAcquired  []models.DraftPick  `json:"picks_acquired"`
	PicksGivenUp   []models.DraftPick  `json:"picks_given_up"`
}

// Empty reports whether the roster did nothing in the transaction
func (a TeamActivity) Empty() bool {
	return len(a.PlayersAdded) == 0 && len(a.PlayersDropped) == 0 &&
		len(a.PicksAcquired) == 0 && len(a.PicksGivenUp) == 0
}

// Description is a transaction rendered for display, grouped by team
type Description struct {
	TransactionID int                    `json:"transaction_id"`
	Type          models.TransactionType `json:"type"`
	Label         string                 `json:"label"`
	Date          time.Time              `json:"date"`
	DateLabel     string                 `json:"date_label"`
	PerTeam       []TeamActivity         `json:"per_team"`
}

// Describe groups a transaction's moves by roster.
//
// Rosters are ordered by first appearance in the participant list, then by first
// appearance in the moves; focus (when non-zero) always sorts last. Rosters with no
// activity are dropped.
func Describe(txn models.Transaction, focus models.RosterID, names Names) Description {
	var order []models.RosterID
	groups := make(map[models.RosterID]*TeamActivity)
	group := func(id models.RosterID) *TeamActivity {
		if g, ok := groups[id]; ok {
			return g
		}
		g := &TeamActivity{
			RosterID:       id,
			TeamName:       names.Resolve(txn, id),
			PlayersAdded:   []models.PlayerInfo{},
			PlayersDropped: []models.PlayerInfo{},
			PicksAcquired:  []models.DraftPick{},
			PicksGivenUp:   []models.DraftPick{},
		}
		groups[id] = g
		order = append(order, id)
		return g
	}

	for _, rm := range txn.RosterMoves {
		group(rm.RosterID)
	}
	for _, m := range txn.PlayerMoves {
		g := group(m.RosterID)
		switch m.Action {
		case models.MoveActionAdd:
			g.PlayersAdded = append(g.PlayersAdded, m.Descriptor())
		case models.MoveActionDrop:
			g.PlayersDropped = append(g.PlayersDropped, m.Descriptor())
		}
	}
	for _, m := range txn.DraftPickMoves {
		pick := models.PickFromMove(m)
		if m.OwnerID != 0 {
			g := group(m.OwnerID)
			g.PicksAcquired = append(g.PicksAcquired, pick)
		}
		if m.PreviousOwnerID != 0 && m.PreviousOwnerID != m.OwnerID {
			g := group(m.PreviousOwnerID)
			g.PicksGivenUp = append(g.PicksGivenUp, pick)
		}
	}

	perTeam := make([]TeamActivity, 0, len(order))
	var focused *TeamActivity
	for _, id := range order {
		g := groups[id]
		if g.Empty() {
			continue
		}
		if focus != 0 && id == focus {
			focused = g
			continue
		}
		perTeam = append(perTeam, *g)
	}
	if focused != nil {
		perTeam = append(perTeam, *focused)
	}

	return Description{
		TransactionID: txn.TransactionID,
		Type:          txn.Type,
		Label:         TypeLabel(txn.Type),
		Date:          txn.CreatedAt.Time,
		DateLabel:     FormatDate(txn.CreatedAt.Time),
		PerTeam:       perTeam,
	}
}
