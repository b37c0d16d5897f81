package league_api_client

const (
	// Base URL
	DefaultBaseURL = "https://d34t1k2xpw6h8v.cloudfront.net/v1"

	// API Endpoints
	TransactionsEndpoint     = "/transactions"
	TransactionEndpoint      = "/transactions/%d"
	FullTradeTreeEndpoint    = "/transactions/%d/full_trade_tree"
	TeamTradesEndpoint       = "/transactions/team/%d/trades"
	PlayerTradeTreeEndpoint  = "/transactions/trade-tree/%d"
	TransactionsByWeekFormat = "/transactions/week/%d"

	// Query parameters
	YearParam     = "year"
	WeekParam     = "week"
	TypeParam     = "type"
	RosterIDParam = "roster_id"

	// Headers
	AcceptHeader = "Accept"
	JSONMimeType = "application/json"
)
