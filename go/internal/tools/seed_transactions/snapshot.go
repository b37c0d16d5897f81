package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

// Team is a league roster and its display name
type Team struct {
	TeamName        string          `json:"team_name"`
	SleeperRosterID models.RosterID `json:"sleeper_roster_id"`
}

// DraftResult is a made pick of a completed rookie draft
type DraftResult struct {
	Season          int             `json:"season"`
	Round           int             `json:"round"`
	PickNo          int             `json:"pick_no"`
	DraftSlot       int             `json:"draft_slot"`
	RosterID        models.RosterID `json:"roster_id"`
	PlayerSleeperID models.PlayerID `json:"player_sleeper_id"`
}

// Snapshot is an export of league history in the league API's JSON shapes
type Snapshot struct {
	Teams        []Team               `json:"teams"`
	Players      []models.PlayerInfo  `json:"players"`
	Transactions []models.Transaction `json:"transactions"`
	DraftResults []DraftResult        `json:"draft_results"`
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if err := snap.validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// validate rejects rows the schema would refuse, naming the first offender
func (s *Snapshot) validate() error {
	seen := make(map[int64]bool, len(s.Transactions))
	for i, txn := range s.Transactions {
		if txn.SleeperTransactionID == 0 {
			return fmt.Errorf("transaction %d: sleeper_transaction_id is required", i)
		}
		if seen[txn.SleeperTransactionID] {
			return fmt.Errorf("transaction %d: duplicate sleeper_transaction_id %d", i, txn.SleeperTransactionID)
		}
		seen[txn.SleeperTransactionID] = true

		for _, pm := range txn.PlayerMoves {
			if pm.Action != models.MoveActionAdd && pm.Action != models.MoveActionDrop {
				return fmt.Errorf("transaction %d: unknown player action %q", txn.SleeperTransactionID, pm.Action)
			}
		}
	}
	for i, p := range s.Players {
		if p.SleeperID == 0 {
			return fmt.Errorf("player %d: sleeper_id is required", i)
		}
	}
	return nil
}

// nullableTime maps the zero time to NULL
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// nullableRoster maps roster 0, meaning unknown, to NULL
func nullableRoster(id models.RosterID) *int {
	if id == 0 {
		return nil
	}
	n := int(id)
	return &n
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// status defaults to complete; older exports omit it
func status(txn models.Transaction) string {
	if txn.Status == "" {
		return models.TransactionStatusComplete
	}
	return txn.Status
}
