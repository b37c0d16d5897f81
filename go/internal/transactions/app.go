package transactions

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/lhsffl/go/internal/models"
	"github.com/mcdev12/lhsffl/go/internal/telemetry"
	"github.com/mcdev12/lhsffl/go/internal/tradetree"
	"github.com/mcdev12/lhsffl/go/internal/viewstate"
)

// DefaultFetchConcurrency bounds concurrent upstream fetches in GetTradeTrees
const DefaultFetchConcurrency = 4

// TreeSource defines what the app layer needs to load a full trade tree
type TreeSource interface {
	GetFullTradeTree(ctx context.Context, transactionID int) (*models.TreeResponse, error)
}

// TradeSource defines what the app layer needs to list a team's trades
type TradeSource interface {
	GetTeamTrades(ctx context.Context, teamID int) ([]models.Transaction, error)
}

// App handles trade tree business logic
type App struct {
	trees       TreeSource
	trades      TradeSource
	clock       clockwork.Clock
	concurrency int
}

// NewApp creates a new trade tree App
func NewApp(trees TreeSource, trades TradeSource, clock clockwork.Clock) *App {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		trees:       trees,
		trades:      trades,
		clock:       clock,
		concurrency: DefaultFetchConcurrency,
	}
}

// SetConcurrency overrides the fan-out limit of GetTradeTrees
func (a *App) SetConcurrency(n int) {
	if n > 0 {
		a.concurrency = n
	}
}

// GetTradeTree fetches the tree rooted at a transaction and derives its branches
func (a *App) GetTradeTree(ctx context.Context, transactionID int) (_ *tradetree.TradeTree, err error) {
	if transactionID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTransactionID, transactionID)
	}

	ctx, span := telemetry.StartSpan(ctx, "transactions.GetTradeTree",
		trace.WithAttributes(attribute.Int("transaction_id", transactionID)))
	defer func() { telemetry.End(span, err) }()

	resp, err := a.fetchTree(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	_, assemble := telemetry.StartSpan(ctx, "tradetree.BuildTradeTree")
	tree := tradetree.BuildTradeTree(*resp, a.clock.Now())
	assemble.SetAttributes(attribute.Int("branches", len(tree.Branches)))
	assemble.End()

	event := log.Debug().
		Int("transaction_id", transactionID).
		Int("branches", len(tree.Branches))
	if traceID, spanID, ok := telemetry.TraceFields(ctx); ok {
		event = event.Str("trace_id", traceID).Str("span_id", spanID)
	}
	event.Msg("Built trade tree")

	return &tree, nil
}

func (a *App) fetchTree(ctx context.Context, transactionID int) (*models.TreeResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "transactions.fetchTree")
	resp, err := a.trees.GetFullTradeTree(ctx, transactionID)
	if err == nil && !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "unknown error"
		}
		err = fmt.Errorf("%w: %s", ErrUnsuccessful, msg)
	}
	telemetry.End(span, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load trade tree %d: %w", transactionID, err)
	}

	resp.Normalize()
	return resp, nil
}

// LoadTradeTreeView is GetTradeTree as a view state: Failed or Ready, never Loading
func (a *App) LoadTradeTreeView(ctx context.Context, transactionID int) viewstate.State[tradetree.TradeTree] {
	tree, err := a.GetTradeTree(ctx, transactionID)
	if err != nil {
		log.Warn().Err(err).Int("transaction_id", transactionID).Msg("Trade tree unavailable")
		return viewstate.Failed[tradetree.TradeTree](err)
	}
	return viewstate.Ready(*tree)
}

// GetTradeTrees loads several trees concurrently. The result is in request order; any
// failure cancels the rest and is returned alone.
func (a *App) GetTradeTrees(ctx context.Context, transactionIDs []int) ([]tradetree.TradeTree, error) {
	trees := make([]tradetree.TradeTree, len(transactionIDs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, id := range transactionIDs {
		g.Go(func() error {
			tree, err := a.GetTradeTree(ctx, id)
			if err != nil {
				return err
			}
			trees[i] = *tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return trees, nil
}

// TradeCardTeam is one side of a trade card
type TradeCardTeam struct {
	RosterID models.RosterID `json:"sleeper_roster_id"`
	TeamName string          `json:"team_name"`
	Received []string        `json:"received"`
	Sent     []string        `json:"sent"`
}

// TradeCard summarises one trade for a team's trade history
type TradeCard struct {
	TransactionID int                   `json:"transaction_id"`
	DateLabel     string                `json:"date_label"`
	Teams         []TradeCardTeam       `json:"teams"`
	Description   tradetree.Description `json:"description"`
}

// GetTeamTradeCards lists a team's trades as cards. Sides are described relative to
// focus, which is listed last; zero means no focus.
func (a *App) GetTeamTradeCards(ctx context.Context, teamID int, focus models.RosterID) (_ []TradeCard, err error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTeamID, teamID)
	}

	ctx, span := telemetry.StartSpan(ctx, "transactions.GetTeamTradeCards",
		trace.WithAttributes(attribute.Int("team_id", teamID)))
	defer func() { telemetry.End(span, err) }()

	trades, err := a.trades.GetTeamTrades(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team trades: %w", err)
	}

	cards := make([]TradeCard, 0, len(trades))
	for _, txn := range tradetree.SortTransactions(trades) {
		if !txn.IsTrade() {
			continue
		}
		txn.Normalize()
		desc := tradetree.Describe(txn, focus, tradetree.Names{})
		cards = append(cards, TradeCard{
			TransactionID: txn.TransactionID,
			DateLabel:     desc.DateLabel,
			Teams:         cardTeams(desc),
			Description:   desc,
		})
	}

	return cards, nil
}

func cardTeams(desc tradetree.Description) []TradeCardTeam {
	teams := make([]TradeCardTeam, 0, len(desc.PerTeam))
	for _, activity := range desc.PerTeam {
		team := TradeCardTeam{
			RosterID: activity.RosterID,
			TeamName: activity.TeamName,
			Received: []string{},
			Sent:     []string{},
		}
		for _, p := range activity.PlayersAdded {
			team.Received = append(team.Received, p.FullName())
		}
		for _, pick := range activity.PicksAcquired {
			team.Received = append(team.Received, tradetree.PickLabelShort(pick.Season, pick.Round))
		}
		for _, p := range activity.PlayersDropped {
			team.Sent = append(team.Sent, p.FullName())
		}
		for _, pick := range activity.PicksGivenUp {
			team.Sent = append(team.Sent, tradetree.PickLabelShort(pick.Season, pick.Round))
		}
		teams = append(teams, team)
	}
	return teams
}
