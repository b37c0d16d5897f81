package tradetree

import (
	"github.com/mcdev12/lhsffl/go/internal/models"
)

// Timeline card icons
const (
	IconTradedAway = "↗"
	IconTrade      = "⇄"
	IconDropped    = "↓"
	IconPickedUp   = "↑"
	IconRosterMove = "↕"
	IconWaiver     = "✋"
	IconOther      = "•"
)

// Narration is one timeline card: how a transaction reads from a branch's point of
// view while following a single asset.
type Narration struct {
	Icon          string              `json:"icon"`
	Headline      string              `json:"headline"`
	Subtitle      string              `json:"subtitle,omitempty"`
	Received      []models.PlayerInfo `json:"received"`
	ReceivedPicks []models.DraftPick  `json:"received_picks"`
	Given         []models.PlayerInfo `json:"given"`
	GivenPicks    []models.DraftPick  `json:"given_picks"`
}

// Narrate renders txn as seen by rosterID while tracking asset
func Narrate(txn models.Transaction, rosterID models.RosterID, asset Asset, names Names) Narration {
	n := Narration{
		Received:      []models.PlayerInfo{},
		ReceivedPicks: []models.DraftPick{},
		Given:         []models.PlayerInfo{},
		GivenPicks:    []models.DraftPick{},
	}

	switch txn.Type {
	case models.TransactionTypeTrade:
		return narrateTrade(n, txn, rosterID, asset, names)

	case models.TransactionTypeFreeAgent:
		action, mover, ok := trackedMove(txn, rosterID, asset)
		switch {
		case ok && action == models.MoveActionDrop:
			n.Icon = IconDropped
			n.Headline = "Dropped " + asset.ShortName()
			if name := txn.TeamNameFor(mover); name != "" {
				n.Subtitle = "Released by " + name
			}
		case ok && action == models.MoveActionAdd:
			n.Icon = IconPickedUp
			n.Headline = "Picked up by " + names.Resolve(txn, mover)
			n.Subtitle = "Free Agent Claim"
		default:
			n.Icon = IconRosterMove
			n.Headline = "Roster move"
			n.Subtitle = "Free Agent"
			for _, m := range txn.PlayerMoves {
				switch m.Action {
				case models.MoveActionAdd:
					n.Received = append(n.Received, m.Descriptor())
				case models.MoveActionDrop:
					n.Given = append(n.Given, m.Descriptor())
				}
			}
		}
		return n

	case models.TransactionTypeWaiver:
		action, mover, ok := trackedMove(txn, rosterID, asset)
		if ok && action == models.MoveActionDrop {
			n.Icon = IconDropped
			n.Headline = "Dropped " + asset.ShortName()
			if name := txn.TeamNameFor(mover); name != "" {
				n.Subtitle = "Released by " + name
			}
			return n
		}
		n.Icon = IconWaiver
		n.Headline = "Picked up by " + names.Resolve(txn, mover)
		n.Subtitle = "Waiver Claim"
		return n
	}

	n.Icon = IconOther
	n.Headline = string(txn.Type)
	if n.Headline == "" {
		n.Headline = TypeLabel(txn.Type)
	}
	return n
}

func narrateTrade(n Narration, txn models.Transaction, rosterID models.RosterID, asset Asset, names Names) Narration {
	var others []string
	for _, rm := range txn.RosterMoves {
		if rm.RosterID != rosterID {
			others = append(others, names.Resolve(txn, rm.RosterID))
		}
	}
	otherTeams := joinNames(others)

	for _, m := range txn.PlayerMoves {
		if m.RosterID != rosterID {
			continue
		}
		switch m.Action {
		case models.MoveActionAdd:
			n.Received = append(n.Received, m.Descriptor())
		case models.MoveActionDrop:
			n.Given = append(n.Given, m.Descriptor())
		}
	}
	for _, m := range txn.DraftPickMoves {
		if m.OwnerID == rosterID {
			n.ReceivedPicks = append(n.ReceivedPicks, models.PickFromMove(m))
		}
		if m.PreviousOwnerID == rosterID && m.OwnerID != rosterID {
			n.GivenPicks = append(n.GivenPicks, models.PickFromMove(m))
		}
	}

	if leftRoster(txn, asset, rosterID) {
		n.Icon = IconTradedAway
		n.Headline = "Traded " + asset.ShortName() + " to " + otherTeams
		n.Given = []models.PlayerInfo{}
		n.GivenPicks = []models.DraftPick{}
		return n
	}

	n.Icon = IconTrade
	n.Headline = "Trade with " + otherTeams
	return n
}

// trackedMove finds the first move of the asset in txn and the roster it names.
// For picks, rosterID giving the pick up reads as a drop; anything else as an add by the new owner.
func trackedMove(txn models.Transaction, rosterID models.RosterID, asset Asset) (models.MoveAction, models.RosterID, bool) {
	if asset.IsPick() {
		moves := pickMovesFor(txn, asset.PickKey())
		if len(moves) == 0 {
			return "", 0, false
		}
		for _, m := range moves {
			if m.PreviousOwnerID == rosterID && m.OwnerID != rosterID {
				return models.MoveActionDrop, rosterID, true
			}
		}
		return models.MoveActionAdd, moves[0].OwnerID, true
	}

	moves := playerMovesFor(txn, asset.PlayerID())
	if len(moves) == 0 {
		return "", 0, false
	}
	return moves[0].Action, moves[0].RosterID, true
}
