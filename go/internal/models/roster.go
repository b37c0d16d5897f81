package models

import (
	"fmt"
	"strconv"
)

// RosterID is the league platform's persistent roster identifier. Zero means unknown.
type RosterID int

// String renders the id the way it appears as a map key in tree responses
func (r RosterID) String() string {
	return strconv.Itoa(int(r))
}

// FallbackName is the display label used when no team name is known for a roster
func (r RosterID) FallbackName() string {
	return fmt.Sprintf("Roster %d", int(r))
}

// ParseRosterID parses a roster id from a map key or path segment
func ParseRosterID(s string) (RosterID, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid roster id %q: %w", s, err)
	}
	return RosterID(id), nil
}

// TeamRef is the embedded team descriptor attached to roster and player moves
type TeamRef struct {
	TeamID   int      `json:"team_id,omitempty"`
	TeamName string   `json:"team_name"`
	RosterID RosterID `json:"sleeper_roster_id,omitempty"`
}

// RosterParticipant associates a roster with a team name for one transaction
type RosterParticipant struct {
	TransactionRosterID int      `json:"transaction_roster_id,omitempty"`
	TransactionID       int      `json:"transaction_id,omitempty"`
	RosterID            RosterID `json:"sleeper_roster_id"`
	Team                *TeamRef `json:"team,omitempty"`
	IsConsenter         bool     `json:"is_consenter"`
}

// TeamName returns the participant's team name, or "" when the team is missing
func (p RosterParticipant) TeamName() string {
	if p.Team == nil {
		return ""
	}
	return p.Team.TeamName
}
