package tradetree

import (
	"github.com/mcdev12/lhsffl/go/internal/models"
)

// BuildLedger returns every asset a roster has held, in first-seen order.
//
// Origin players then origin picks come first, stamped with the origin date. The
// transactions (assumed sorted oldest first) are then scanned for player adds naming
// rosterID and pick moves whose new owner is rosterID; each previously unseen asset is
// appended with that transaction's timestamp. Picks are keyed by season, round and
// original owner.
func BuildLedger(origin OriginAssets, txns []models.Transaction, rosterID models.RosterID) []Asset {
	ledger := make([]Asset, 0, len(origin.Players)+len(origin.Picks))
	seenPlayers := make(map[models.PlayerID]bool)
	seenPicks := make(map[models.PickKey]bool)

	for _, p := range origin.Players {
		if seenPlayers[p.SleeperID] {
			continue
		}
		seenPlayers[p.SleeperID] = true
		ledger = append(ledger, PlayerAsset(p, origin.Date))
	}
	for _, pick := range origin.Picks {
		key := pick.Key()
		if seenPicks[key] {
			continue
		}
		seenPicks[key] = true
		ledger = append(ledger, PickAsset(pick, origin.Date))
	}

	for _, txn := range txns {
		acquired := txn.CreatedAt.Time
		if acquired.IsZero() {
			acquired = origin.Date
		}

		for _, move := range txn.PlayerMoves {
			if move.Action != models.MoveActionAdd || move.RosterID != rosterID {
				continue
			}
			if seenPlayers[move.PlayerID] {
				continue
			}
			seenPlayers[move.PlayerID] = true
			ledger = append(ledger, PlayerAsset(move.Descriptor(), acquired))
		}

		for _, move := range txn.DraftPickMoves {
			if move.OwnerID != rosterID {
				continue
			}
			key := move.Key()
			if seenPicks[key] {
				continue
			}
			seenPicks[key] = true
			ledger = append(ledger, PickAsset(models.PickFromMove(move), acquired))
		}
	}

	return ledger
}
