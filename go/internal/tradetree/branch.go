package tradetree

import (
	"sort"
	"strings"
	"time"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

// NoRippleEffects labels a branch that never held anything
const NoRippleEffects = "No ripple effects"

// TimelineEntry is one transaction in an asset's move history
type TimelineEntry struct {
	TransactionID int         `json:"transaction_id"`
	Date          time.Time   `json:"date"`
	DateLabel     string      `json:"date_label"`
	Narration     Narration   `json:"narration"`
	Description   Description `json:"description"`
}

// AssetBranch is an asset followed through one team branch
type AssetBranch struct {
	Asset    Asset           `json:"asset"`
	Label    string          `json:"label"`
	Timeline []TimelineEntry `json:"timeline"`
	Terminal TerminalState   `json:"terminal"`
}

// TeamBranch is the lineage of one roster descending from the origin
type TeamBranch struct {
	RosterID models.RosterID `json:"sleeper_roster_id"`
	TeamName string          `json:"team_name"`
	Assets   []AssetBranch   `json:"assets"`
}

// Empty reports whether the branch never held an asset
func (b TeamBranch) Empty() bool {
	return len(b.Assets) == 0
}

// Status is the branch's summary line
func (b TeamBranch) Status() string {
	if b.Empty() {
		return NoRippleEffects
	}
	return ""
}

// AssembleBranches builds one branch per team of the tree, ordered by roster id.
// Branches without assets are kept so callers can render an empty state.
func AssembleBranches(tree models.TreeResponse, now time.Time) []TeamBranch {
	names := namesFor(tree)
	originDate := tree.Origin.CreatedAt.Time

	branches := make([]TeamBranch, 0, len(tree.Teams))
	for _, rosterID := range tree.RosterIDs() {
		team, _ := tree.Team(rosterID)
		branches = append(branches, assembleBranch(tree, team, rosterID, originDate, names, now))
	}
	return branches
}

func assembleBranch(tree models.TreeResponse, team models.TeamData, rosterID models.RosterID, originDate time.Time, names Names, now time.Time) TeamBranch {
	teamName := team.TeamName
	if teamName == "" || isFallbackName(rosterID, teamName) {
		teamName = names.Resolve(tree.Origin, rosterID)
	}

	txns := SortTransactions(team.Transactions)
	origin := OriginAssets{
		Players: team.AcquiredPlayers,
		Picks:   team.AcquiredPicks,
		Date:    originDate,
	}
	ledger := BuildLedger(origin, txns, rosterID)

	assets := make([]AssetBranch, 0, len(ledger))
	for _, asset := range ledger {
		asset = withDraftResult(tree, asset)
		assetTxns := MovesForAsset(asset, sinceAcquired(txns, asset.AcquiredDate))

		timeline := make([]TimelineEntry, 0, len(assetTxns))
		for _, txn := range assetTxns {
			timeline = append(timeline, TimelineEntry{
				TransactionID: txn.TransactionID,
				Date:          txn.CreatedAt.Time,
				DateLabel:     FormatDate(txn.CreatedAt.Time),
				Narration:     Narrate(txn, rosterID, asset, names),
				Description:   Describe(txn, rosterID, names),
			})
		}

		assets = append(assets, AssetBranch{
			Asset:    asset,
			Label:    asset.Name(),
			Timeline: timeline,
			Terminal: ResolveTerminal(asset, assetTxns, rosterID, teamName, now),
		})
	}

	return TeamBranch{
		RosterID: rosterID,
		TeamName: teamName,
		Assets:   assets,
	}
}

// withDraftResult attaches the drafted player from pick metadata when the pick does not embed one
func withDraftResult(tree models.TreeResponse, asset Asset) Asset {
	if !asset.IsPick() || asset.Pick.DraftedPlayer != nil {
		return asset
	}
	meta, ok := tree.PickMetadata[asset.PickKey().String()]
	if !ok || meta.DraftedPlayer == nil {
		return asset
	}
	pick := *asset.Pick
	pick.DraftedPlayer = meta.DraftedPlayer
	if pick.PickNo == nil {
		pick.PickNo = meta.PickNo
	}
	asset.Pick = &pick
	return asset
}

// sinceAcquired drops transactions older than the acquisition
func sinceAcquired(txns []models.Transaction, acquired time.Time) []models.Transaction {
	i := sort.Search(len(txns), func(i int) bool {
		return !txns[i].CreatedAt.Before(acquired)
	})
	return txns[i:]
}

// namesFor collects every roster name the tree knows about
func namesFor(tree models.TreeResponse) Names {
	names := Names{}
	for _, rm := range tree.Origin.RosterMoves {
		if n := rm.TeamName(); n != "" {
			names[rm.RosterID] = n
		}
	}
	for id, n := range tree.TeamNames() {
		if _, ok := names[id]; !ok && !isFallbackName(id, n) {
			names[id] = n
		}
	}
	return names
}

func isFallbackName(id models.RosterID, name string) bool {
	return name == id.FallbackName()
}

// OriginTeam is what one roster received in the origin transaction
type OriginTeam struct {
	RosterID   models.RosterID     `json:"sleeper_roster_id"`
	TeamName   string              `json:"team_name"`
	Players    []models.PlayerInfo `json:"players"`
	Picks      []models.DraftPick  `json:"picks"`
	PickLabels []string            `json:"pick_labels"`
}

// TradeTree is the complete derived view of one origin transaction
type TradeTree struct {
	OriginID  int          `json:"origin_transaction_id"`
	Title     string       `json:"title"`
	DateLabel string       `json:"date_label"`
	Origin    []OriginTeam `json:"origin"`
	Branches  []TeamBranch `json:"branches"`
}

// BuildTradeTree runs the whole derivation for a tree response
func BuildTradeTree(tree models.TreeResponse, now time.Time) TradeTree {
	return TradeTree{
		OriginID:  tree.Origin.TransactionID,
		Title:     Title(tree.Origin),
		DateLabel: FormatDate(tree.Origin.CreatedAt.Time),
		Origin:    SummarizeOrigin(tree.Origin),
		Branches:  AssembleBranches(tree, now),
	}
}

// Title joins the distinct named participants of a transaction: "Team A & Team B"
func Title(txn models.Transaction) string {
	seen := make(map[string]bool)
	var names []string
	for _, rm := range txn.RosterMoves {
		n := rm.TeamName()
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return strings.Join(names, " & ")
}

// SummarizeOrigin lists what each roster acquired in a transaction, ordered by roster
// id. Picks only count for rosters that took part; rosters that acquired nothing are omitted.
func SummarizeOrigin(txn models.Transaction) []OriginTeam {
	teams := make(map[models.RosterID]*OriginTeam)
	team := func(id models.RosterID) *OriginTeam {
		if t, ok := teams[id]; ok {
			return t
		}
		name := txn.TeamNameFor(id)
		if name == "" {
			name = id.FallbackName()
		}
		t := &OriginTeam{
			RosterID:   id,
			TeamName:   name,
			Players:    []models.PlayerInfo{},
			Picks:      []models.DraftPick{},
			PickLabels: []string{},
		}
		teams[id] = t
		return t
	}

	for _, rm := range txn.RosterMoves {
		team(rm.RosterID)
	}
	for _, m := range txn.PlayerMoves {
		if m.Action == models.MoveActionAdd {
			t := team(m.RosterID)
			t.Players = append(t.Players, m.Descriptor())
		}
	}
	for _, m := range txn.DraftPickMoves {
		t, ok := teams[m.OwnerID]
		if m.OwnerID == 0 || !ok {
			continue
		}
		pick := models.PickFromMove(m)
		t.Picks = append(t.Picks, pick)
		t.PickLabels = append(t.PickLabels, PickLabelLong(pick))
	}

	summary := make([]OriginTeam, 0, len(teams))
	for _, t := range teams {
		if len(t.Players) > 0 || len(t.Picks) > 0 {
			summary = append(summary, *t)
		}
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].RosterID < summary[j].RosterID })
	return summary
}
