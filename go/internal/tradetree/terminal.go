package tradetree

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

// TerminalKind is the final disposition of an asset within a branch
type TerminalKind string

const (
	TerminalHeld     TerminalKind = "held"
	TerminalTraded   TerminalKind = "traded"
	TerminalReleased TerminalKind = "released"
	TerminalDrafted  TerminalKind = "drafted"
)

const (
	subtitleNoMovement = "No further movement"
	subtitleStillHeld  = "Still on roster"
	subtitlePickUnused = "Pick not yet used"
	subtitleEnded      = "End of branch"

	anotherTeam = "another team"
)

// TerminalState describes what ultimately happened to an asset in a branch
type TerminalState struct {
	Kind           TerminalKind       `json:"kind"`
	Label          string             `json:"label"`
	Subtitle       string             `json:"subtitle"`
	Duration       string             `json:"duration"`
	Days           int                `json:"days"`
	EndedAt        *time.Time         `json:"ended_at,omitempty"`
	Counterparties []string           `json:"counterparties,omitempty"`
	DraftedPlayer  *models.PlayerInfo `json:"drafted_player,omitempty"`
}

// Ended reports whether the asset left the branch
func (s TerminalState) Ended() bool {
	return s.Kind == TerminalTraded || s.Kind == TerminalReleased
}

// ResolveTerminal classifies an asset's fate from the last transaction in which rosterID
// moved it. Later moves between other rosters do not change the branch's outcome.
//
// assetTxns must be the asset's own timeline (see MovesForAsset), oldest first. An
// asset that left rosterID in a trade is traded; one that left in any other
// transaction is released. Anything else is held, except a pick with a known draft
// result, which is drafted. A pick traded away is never drafted.
func ResolveTerminal(asset Asset, assetTxns []models.Transaction, rosterID models.RosterID, teamName string, now time.Time) TerminalState {
	if teamName == "" {
		teamName = rosterID.FallbackName()
	}

	last, ok := lastMoveBy(assetTxns, asset, rosterID)
	if !ok {
		subtitle := subtitleNoMovement
		if asset.IsPick() {
			subtitle = subtitlePickUnused
		}
		return retained(asset, teamName, subtitle, now)
	}

	if leftRoster(last, asset, rosterID) {
		ended := last.CreatedAt.Time
		state := TerminalState{
			Subtitle: subtitleEnded,
			Duration: FormatDuration(asset.AcquiredDate, ended),
			Days:     WholeDays(asset.AcquiredDate, ended),
			EndedAt:  &ended,
		}
		if last.IsTrade() {
			state.Kind = TerminalTraded
			state.Counterparties = counterparties(last, rosterID)
			state.Label = "Traded to " + joinNames(state.Counterparties)
			return state
		}
		state.Kind = TerminalReleased
		state.Label = "Released"
		return state
	}

	return retained(asset, teamName, subtitleStillHeld, now)
}

// retained resolves an asset that never left the branch to held or drafted
func retained(asset Asset, teamName, subtitle string, now time.Time) TerminalState {
	state := TerminalState{
		Kind:     TerminalHeld,
		Label:    "Held by " + teamName,
		Subtitle: subtitle,
		Duration: FormatDuration(asset.AcquiredDate, now),
		Days:     WholeDays(asset.AcquiredDate, now),
	}
	if drafted := asset.DraftedPlayer(); drafted != nil {
		state.Kind = TerminalDrafted
		state.Label = "Drafted " + drafted.FullName()
		state.Subtitle = draftedSubtitle(asset.Pick, teamName)
		state.DraftedPlayer = drafted
	}
	return state
}

func draftedSubtitle(pick *models.DraftPick, teamName string) string {
	if pick.PickNo != nil {
		return fmt.Sprintf("Pick #%d by %s", *pick.PickNo, teamName)
	}
	return "Selected by " + teamName
}

// lastMoveBy returns the latest transaction in which rosterID gave up or received the asset
func lastMoveBy(txns []models.Transaction, asset Asset, rosterID models.RosterID) (models.Transaction, bool) {
	for i := len(txns) - 1; i >= 0; i-- {
		if movedBy(txns[i], asset, rosterID) {
			return txns[i], true
		}
	}
	return models.Transaction{}, false
}

func movedBy(txn models.Transaction, asset Asset, rosterID models.RosterID) bool {
	if asset.IsPick() {
		for _, m := range pickMovesFor(txn, asset.PickKey()) {
			if m.OwnerID == rosterID || m.PreviousOwnerID == rosterID {
				return true
			}
		}
		return false
	}
	for _, m := range playerMovesFor(txn, asset.PlayerID()) {
		if m.RosterID == rosterID {
			return true
		}
	}
	return false
}

// leftRoster reports whether txn took the asset away from rosterID without giving it back
func leftRoster(txn models.Transaction, asset Asset, rosterID models.RosterID) bool {
	var dropped, added bool
	if asset.IsPick() {
		for _, m := range pickMovesFor(txn, asset.PickKey()) {
			if m.PreviousOwnerID == rosterID && m.OwnerID != rosterID {
				dropped = true
			}
			if m.OwnerID == rosterID {
				added = true
			}
		}
		return dropped && !added
	}

	for _, m := range playerMovesFor(txn, asset.PlayerID()) {
		if m.RosterID != rosterID {
			continue
		}
		switch m.Action {
		case models.MoveActionDrop:
			dropped = true
		case models.MoveActionAdd:
			added = true
		}
	}
	return dropped && !added
}

// counterparties names every participant of txn other than rosterID, in participant order
func counterparties(txn models.Transaction, rosterID models.RosterID) []string {
	var names []string
	for _, rm := range txn.RosterMoves {
		if rm.RosterID == rosterID {
			continue
		}
		name := rm.TeamName()
		if name == "" {
			name = txn.TeamNameFor(rm.RosterID)
		}
		if name == "" {
			name = rm.RosterID.FallbackName()
		}
		names = append(names, name)
	}
	return names
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return anotherTeam
	}
	return strings.Join(names, " & ")
}
