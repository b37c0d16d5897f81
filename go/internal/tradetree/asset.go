// Package tradetree derives trade lineages from a league transaction history.
//
// Everything in this package is pure: functions take their inputs (including the
// current time) as arguments and never fail. Malformed relational data degrades to
// fallback labels instead of errors.
package tradetree

import (
	"fmt"
	"time"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

// AssetKind distinguishes players from draft picks
type AssetKind string

const (
	AssetKindPlayer AssetKind = "player"
	AssetKindPick   AssetKind = "pick"
)

// Asset is a player or draft pick tracked through a branch, stamped with the time
// the branch first held it.
type Asset struct {
	Kind         AssetKind          `json:"kind"`
	Player       *models.PlayerInfo `json:"player,omitempty"`
	Pick         *models.DraftPick  `json:"pick,omitempty"`
	AcquiredDate time.Time          `json:"acquired_date"`
}

// PlayerAsset builds a player asset
func PlayerAsset(p models.PlayerInfo, acquired time.Time) Asset {
	return Asset{Kind: AssetKindPlayer, Player: &p, AcquiredDate: acquired}
}

// PickAsset builds a draft pick asset
func PickAsset(p models.DraftPick, acquired time.Time) Asset {
	return Asset{Kind: AssetKindPick, Pick: &p, AcquiredDate: acquired}
}

// IsPick reports whether the asset is a draft pick
func (a Asset) IsPick() bool {
	return a.Kind == AssetKindPick && a.Pick != nil
}

// PlayerID returns the player id of a player asset, 0 otherwise
func (a Asset) PlayerID() models.PlayerID {
	if a.Kind != AssetKindPlayer || a.Player == nil {
		return 0
	}
	return a.Player.SleeperID
}

// PickKey returns the identity of a pick asset
func (a Asset) PickKey() models.PickKey {
	if !a.IsPick() {
		return models.PickKey{}
	}
	return a.Pick.Key()
}

// ID is a stable identity string, unique per physical asset
func (a Asset) ID() string {
	if a.IsPick() {
		return "pick:" + a.PickKey().String()
	}
	return fmt.Sprintf("player:%d", a.PlayerID())
}

// Name is the asset's display name
func (a Asset) Name() string {
	if a.IsPick() {
		return PickLabelLong(*a.Pick)
	}
	if a.Player == nil {
		return "Unknown player"
	}
	return a.Player.FullName()
}

// ShortName is the compact display name used inside narratives
func (a Asset) ShortName() string {
	if a.IsPick() {
		return PickLabelShort(a.Pick.Season, a.Pick.Round)
	}
	return a.Name()
}

// DraftedPlayer returns the player a pick asset resolved to, if known
func (a Asset) DraftedPlayer() *models.PlayerInfo {
	if !a.IsPick() {
		return nil
	}
	return a.Pick.DraftedPlayer
}

// OriginAssets are the assets a roster received in the origin transaction
type OriginAssets struct {
	Players []models.PlayerInfo
	Picks   []models.DraftPick
	Date    time.Time
}
