package league_api_client

import (
	"context"
	"fmt"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

type treeResponse struct {
	models.TreeResponse
}

func (r *treeResponse) check() error {
	return Envelope{Success: r.Success, Error: r.Error}.check()
}

// GetFullTradeTree fetches the trade tree rooted at a transaction, normalized
func (c *LeagueAPIClient) GetFullTradeTree(ctx context.Context, transactionID int) (*models.TreeResponse, error) {
	endpoint := fmt.Sprintf(FullTradeTreeEndpoint, transactionID)

	var resp treeResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	tree := resp.TreeResponse
	tree.Normalize()
	return &tree, nil
}

// PlayerTradeTree is every completed transaction that moved one player
type PlayerTradeTree struct {
	Player       *models.PlayerInfo   `json:"player"`
	Transactions []models.Transaction `json:"trade_tree"`
}

type playerTradeTreeResponse struct {
	Envelope
	PlayerTradeTree
}

// GetPlayerTradeTree fetches a single player's move history, oldest first
func (c *LeagueAPIClient) GetPlayerTradeTree(ctx context.Context, playerID models.PlayerID) (*PlayerTradeTree, error) {
	endpoint := fmt.Sprintf(PlayerTradeTreeEndpoint, int64(playerID))

	var resp playerTradeTreeResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	out := resp.PlayerTradeTree
	if out.Transactions == nil {
		out.Transactions = []models.Transaction{}
	}
	for i := range out.Transactions {
		out.Transactions[i].Normalize()
	}
	return &out, nil
}
