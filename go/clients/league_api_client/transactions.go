package league_api_client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mcdev12/lhsffl/go/internal/models"
)

// TransactionFilter narrows a transaction listing. Zero fields are not sent.
type TransactionFilter struct {
	Year     int
	Week     int
	Type     models.TransactionType
	RosterID models.RosterID
}

// Query encodes the filter as sorted query parameters
func (f TransactionFilter) Query() url.Values {
	q := url.Values{}
	if f.Year != 0 {
		q.Set(YearParam, strconv.Itoa(f.Year))
	}
	if f.Week != 0 {
		q.Set(WeekParam, strconv.Itoa(f.Week))
	}
	if f.Type != "" {
		q.Set(TypeParam, string(f.Type))
	}
	if f.RosterID != 0 {
		q.Set(RosterIDParam, f.RosterID.String())
	}
	return q
}

type transactionResponse struct {
	Envelope
	Transaction models.Transaction `json:"transaction"`
}

type transactionsResponse struct {
	Envelope
	Transactions []models.Transaction `json:"transactions"`
}

// GetTransaction fetches a single transaction
func (c *LeagueAPIClient) GetTransaction(ctx context.Context, transactionID int) (*models.Transaction, error) {
	endpoint := fmt.Sprintf(TransactionEndpoint, transactionID)

	var resp transactionResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	txn := resp.Transaction
	txn.Normalize()
	return &txn, nil
}

// GetTransactions lists transactions matching the filter
func (c *LeagueAPIClient) GetTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	endpoint := TransactionsEndpoint
	if q := filter.Query(); len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	return c.listTransactions(ctx, endpoint)
}

// GetTransactionsByWeek lists the current season's transactions for a week
func (c *LeagueAPIClient) GetTransactionsByWeek(ctx context.Context, week int) ([]models.Transaction, error) {
	return c.listTransactions(ctx, fmt.Sprintf(TransactionsByWeekFormat, week))
}

// GetTeamTrades lists every trade a team took part in
func (c *LeagueAPIClient) GetTeamTrades(ctx context.Context, teamID int) ([]models.Transaction, error) {
	return c.listTransactions(ctx, fmt.Sprintf(TeamTradesEndpoint, teamID))
}

func (c *LeagueAPIClient) listTransactions(ctx context.Context, endpoint string) ([]models.Transaction, error) {
	var resp transactionsResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	txns := resp.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}
	for i := range txns {
		txns[i].Normalize()
	}
	return txns, nil
}
