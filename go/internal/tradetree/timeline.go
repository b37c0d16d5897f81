package tradetree

import (
	"sort"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

// MovesForAsset filters txns down to those that moved the asset. Input order is kept
// and a transaction appears once no matter how many of its moves name the asset.
func MovesForAsset(asset Asset, txns []models.Transaction) []models.Transaction {
	moves := make([]models.Transaction, 0)
	for _, txn := range txns {
		if touches(txn, asset) {
			moves = append(moves, txn)
		}
	}
	return moves
}

func touches(txn models.Transaction, asset Asset) bool {
	if asset.IsPick() {
		key := asset.PickKey()
		for _, m := range txn.DraftPickMoves {
			if m.Key() == key {
				return true
			}
		}
		return false
	}

	id := asset.PlayerID()
	for _, m := range txn.PlayerMoves {
		if m.PlayerID == id {
			return true
		}
	}
	return false
}

// playerMovesFor returns the moves of a player inside one transaction
func playerMovesFor(txn models.Transaction, id models.PlayerID) []models.PlayerMove {
	var moves []models.PlayerMove
	for _, m := range txn.PlayerMoves {
		if m.PlayerID == id {
			moves = append(moves, m)
		}
	}
	return moves
}

// pickMovesFor returns the moves of a pick inside one transaction
func pickMovesFor(txn models.Transaction, key models.PickKey) []models.DraftPickMove {
	var moves []models.DraftPickMove
	for _, m := range txn.DraftPickMoves {
		if m.Key() == key {
			moves = append(moves, m)
		}
	}
	return moves
}

// SortTransactions returns a copy of txns ordered oldest first. Ties keep their input order.
func SortTransactions(txns []models.Transaction) []models.Transaction {
	sorted := make([]models.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt.Time)
	})
	return sorted
}
