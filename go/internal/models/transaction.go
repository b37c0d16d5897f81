package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TransactionType is the kind of league transaction
type TransactionType string

const (
	TransactionTypeTrade     TransactionType = "trade"
	TransactionTypeWaiver    TransactionType = "waiver"
	TransactionTypeFreeAgent TransactionType = "free_agent"
)

// TransactionStatusComplete is the only status that takes part in trade lineages
const TransactionStatusComplete = "complete"

// Transaction is an immutable historical league event
type Transaction struct {
	TransactionID        int                 `json:"transaction_id"`
	SleeperTransactionID int64               `json:"sleeper_transaction_id,omitempty"`
	Year                 int                 `json:"year,omitempty"`
	Week                 int                 `json:"week,omitempty"`
	Type                 TransactionType     `json:"type"`
	Status               string              `json:"status,omitempty"`
	CreatedAt            Timestamp           `json:"created_at"`
	PlayerMoves          []PlayerMove        `json:"player_moves"`
	DraftPickMoves       []DraftPickMove     `json:"draft_pick_moves"`
	RosterMoves          []RosterParticipant `json:"roster_moves"`
}

// IsTrade reports whether the transaction is a trade
func (t Transaction) IsTrade() bool {
	return t.Type == TransactionTypeTrade
}

// Participant returns the roster participant entry for a roster, if any
func (t Transaction) Participant(rosterID RosterID) (RosterParticipant, bool) {
	for _, rm := range t.RosterMoves {
		if rm.RosterID == rosterID {
			return rm, true
		}
	}
	return RosterParticipant{}, false
}

// TeamNameFor resolves a roster's display name from this transaction alone:
// participant team first, then any player move naming the roster. Returns "" if unknown.
func (t Transaction) TeamNameFor(rosterID RosterID) string {
	if p, ok := t.Participant(rosterID); ok && p.TeamName() != "" {
		return p.TeamName()
	}
	for _, pm := range t.PlayerMoves {
		if pm.RosterID == rosterID && pm.Team != nil && pm.Team.TeamName != "" {
			return pm.Team.TeamName
		}
	}
	return ""
}

// naiveLayouts are the timestamp forms the league API emits without a zone
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a point in time decoded from either RFC3339 or a zone-less ISO form (UTC)
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses any supported timestamp form
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t.UTC()}, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unsupported timestamp %q", s)
}

// UnmarshalJSON accepts null, RFC3339 and naive ISO strings
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON renders RFC3339 in UTC, or null for the zero time
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.UTC().Format(time.RFC3339))
}
