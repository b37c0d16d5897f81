package models

import (
	"fmt"
	"strings"
)

// PlayerID is the league platform's player identifier
type PlayerID int64

// MoveAction is the direction of a player move
type MoveAction string

const (
	MoveActionAdd  MoveAction = "add"
	MoveActionDrop MoveAction = "drop"
)

// PlayerInfo describes a player as embedded in moves, acquisitions and pick results
type PlayerInfo struct {
	PlayerID  int      `json:"player_id,omitempty"`
	SleeperID PlayerID `json:"sleeper_id,omitempty"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Position  string   `json:"position,omitempty"`
	NFLTeam   string   `json:"nfl_team,omitempty"`
}

// FullName joins first and last name, falling back to "Player {id}"
func (p PlayerInfo) FullName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return fmt.Sprintf("Player %d", p.SleeperID)
	}
	return name
}

// PlayerMove is a single add or drop of a player inside a transaction
type PlayerMove struct {
	TransactionPlayerID int         `json:"transaction_player_id,omitempty"`
	TransactionID       int         `json:"transaction_id,omitempty"`
	PlayerID            PlayerID    `json:"player_sleeper_id"`
	RosterID            RosterID    `json:"sleeper_roster_id"`
	Action              MoveAction  `json:"action"`
	Team                *TeamRef    `json:"team,omitempty"`
	Player              *PlayerInfo `json:"player,omitempty"`
}

// PlayerName returns the embedded player's name or "Player {id}"
func (m PlayerMove) PlayerName() string {
	if m.Player == nil {
		return fmt.Sprintf("Player %d", m.PlayerID)
	}
	p := *m.Player
	if p.SleeperID == 0 {
		p.SleeperID = m.PlayerID
	}
	return p.FullName()
}

// Descriptor returns the embedded player, synthesizing a placeholder when absent
func (m PlayerMove) Descriptor() PlayerInfo {
	if m.Player != nil {
		p := *m.Player
		if p.SleeperID == 0 {
			p.SleeperID = m.PlayerID
		}
		return p
	}
	return PlayerInfo{SleeperID: m.PlayerID, FirstName: "Player", LastName: fmt.Sprintf("%d", m.PlayerID)}
}
