package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PickKey identifies one physical draft pick across trades
type PickKey struct {
	Season        int      `json:"season"`
	Round         int      `json:"round"`
	OriginalOwner RosterID `json:"original_owner_id"`
}

// String renders the key in the "{season}:{round}:{owner}" form used by pick metadata
func (k PickKey) String() string {
	return fmt.Sprintf("%d:%d:%d", k.Season, k.Round, int(k.OriginalOwner))
}

// ParsePickKey parses a "{season}:{round}:{owner}" key
func ParsePickKey(s string) (PickKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return PickKey{}, fmt.Errorf("invalid pick key %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return PickKey{}, fmt.Errorf("invalid pick key %q: %w", s, err)
		}
		nums[i] = n
	}
	return PickKey{Season: nums[0], Round: nums[1], OriginalOwner: RosterID(nums[2])}, nil
}

// DraftPickMove is a change of ownership of a draft pick inside a transaction
type DraftPickMove struct {
	TransactionDraftPickID int         `json:"transaction_draft_pick_id,omitempty"`
	TransactionID          int         `json:"transaction_id,omitempty"`
	Season                 int         `json:"season"`
	Round                  int         `json:"round"`
	RosterID               RosterID    `json:"roster_id,omitempty"` // original slot owner
	OwnerID                RosterID    `json:"owner_id"`
	PreviousOwnerID        RosterID    `json:"previous_owner_id"`
	PickNo                 *int        `json:"pick_no,omitempty"`
	DraftedPlayer          *PlayerInfo `json:"drafted_player,omitempty"`
}

// OriginalOwner is the roster whose draft slot this pick is. Falls back to the
// previous owner when the slot owner is not reported.
func (m DraftPickMove) OriginalOwner() RosterID {
	if m.RosterID != 0 {
		return m.RosterID
	}
	return m.PreviousOwnerID
}

// Key returns the pick identity
func (m DraftPickMove) Key() PickKey {
	return PickKey{Season: m.Season, Round: m.Round, OriginalOwner: m.OriginalOwner()}
}

// DraftPick is a pick held by a team branch
type DraftPick struct {
	Season        int         `json:"season"`
	Round         int         `json:"round"`
	OriginalOwner RosterID    `json:"original_owner_id"`
	PickNo        *int        `json:"pick_no,omitempty"`
	DraftedPlayer *PlayerInfo `json:"drafted_player,omitempty"`
}

// Key returns the pick identity
func (p DraftPick) Key() PickKey {
	return PickKey{Season: p.Season, Round: p.Round, OriginalOwner: p.OriginalOwner}
}

// PickFromMove converts a pick move into the pick it transfers
func PickFromMove(m DraftPickMove) DraftPick {
	return DraftPick{
		Season:        m.Season,
		Round:         m.Round,
		OriginalOwner: m.OriginalOwner(),
		PickNo:        m.PickNo,
		DraftedPlayer: m.DraftedPlayer,
	}
}

// PickMetadata resolves the player eventually drafted with a pick
type PickMetadata struct {
	DraftedPlayer *PlayerInfo `json:"drafted_player,omitempty"`
	PickNo        *int        `json:"pick_no,omitempty"`
}
