package gateway

import (
	"time"

	"github.com/mcdev12/lhsffl/go/internal/tradetree"
	"github.com/mcdev12/lhsffl/go/internal/viewstate"
)

// MessageType is the type of a message pushed to websocket clients
type MessageType string

const (
	MessageTypeTradeTree MessageType = "trade_tree"
)

// TreeMessage carries one state of a subscribed trade tree. Generation increases with
// every refresh of the subscription; clients can ignore messages older than the last seen.
type TreeMessage struct {
	ID            string                               `json:"id"`
	Type          MessageType                          `json:"type"`
	TransactionID int                                  `json:"transaction_id"`
	Generation    uint64                               `json:"generation"`
	Timestamp     time.Time                            `json:"timestamp"`
	State         viewstate.State[tradetree.TradeTree] `json:"state"`
}

// ClientAction is a command a websocket client may send
type ClientAction string

const (
	ClientActionRefresh ClientAction = "refresh"
)

// ClientMessage is a message received from a websocket client
type ClientMessage struct {
	Action ClientAction `json:"action"`
}
