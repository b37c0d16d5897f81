package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/lhsffl/go/internal/tradetree"
	"github.com/mcdev12/lhsffl/go/internal/viewstate"
)

// TreeLoader loads the view state of one trade tree
type TreeLoader interface {
	LoadTradeTreeView(ctx context.Context, transactionID int) viewstate.State[tradetree.TradeTree]
}

// ConnectionManager manages websocket subscriptions to trade trees
type ConnectionManager struct {
	// Subscriptions keyed by origin transaction id
	subscriptions map[int]*subscription
	mu            sync.Mutex

	upgrader websocket.Upgrader
	config   ConnectionConfig
	loader   TreeLoader
	clock    clockwork.Clock

	broadcastCh chan BroadcastMessage

	// Parent of every tree load; cancelled by Stop
	ctx    context.Context
	cancel context.CancelFunc
}

// subscription is every connection watching one tree. generation is bumped by each
// refresh so results of superseded loads can be recognised and dropped.
type subscription struct {
	conns      map[*Connection]bool
	generation uint64
	latest     []byte
}

// Connection represents a websocket connection to a client
type Connection struct {
	ID            string
	TransactionID int
	Conn          *websocket.Conn
	Send          chan []byte
	Manager       *ConnectionManager

	ConnectedAt time.Time
}

// ConnectionConfig holds configuration for websocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	LoadTimeout     time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// BroadcastMessage is a tree message addressed to one subscription
type BroadcastMessage struct {
	TransactionID int
	Generation    uint64
	Data          []byte
	Final         bool
}

// Stats describes the active connections
type Stats struct {
	TotalConnections int            `json:"total_connections"`
	ActiveTrees      int            `json:"active_trees"`
	TreeConnections  map[string]int `json:"tree_connections"`
}

// DefaultConnectionConfig returns default websocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		LoadTimeout:     30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// NewConnectionManager creates a new websocket connection manager
func NewConnectionManager(config ConnectionConfig, loader TreeLoader, clock clockwork.Clock) *ConnectionManager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &ConnectionManager{
		subscriptions: make(map[int]*subscription),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		loader:      loader,
		clock:       clock,
		broadcastCh: make(chan BroadcastMessage, 1000),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start delivers broadcast messages until ctx is done
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			cm.Stop()
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// Stop cancels in-flight tree loads
func (cm *ConnectionManager) Stop() {
	cm.cancel()
}

// UpgradeConnection upgrades an HTTP connection to a websocket subscribed to a tree
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, transactionID int) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:            uuid.New().String(),
		TransactionID: transactionID,
		Conn:          conn,
		Send:          make(chan []byte, 256),
		Manager:       cm,
		ConnectedAt:   cm.clock.Now(),
	}

	go connection.writePump()
	go connection.readPump()

	cm.registerConnection(connection)

	log.Info().
		Str("connection_id", connection.ID).
		Int("transaction_id", transactionID).
		Msg("websocket connection established")

	return nil
}

// registerConnection adds a connection to its tree's subscription. The first
// connection triggers a load; later ones get the latest state right away.
func (cm *ConnectionManager) registerConnection(conn *Connection) {
	cm.mu.Lock()
	sub, exists := cm.subscriptions[conn.TransactionID]
	if !exists {
		sub = &subscription{conns: make(map[*Connection]bool)}
		cm.subscriptions[conn.TransactionID] = sub
	}
	sub.conns[conn] = true
	latest := sub.latest
	generation := sub.generation
	total := len(sub.conns)
	cm.mu.Unlock()

	log.Debug().
		Str("connection_id", conn.ID).
		Int("transaction_id", conn.TransactionID).
		Int("total_connections", total).
		Msg("connection registered")

	switch {
	case !exists:
		cm.Refresh(conn.TransactionID)
	case latest != nil:
		conn.trySend(latest)
	default:
		// a load is in flight; its result reaches this connection too
		if data, err := cm.encode(conn.TransactionID, generation, viewstate.Loading[tradetree.TradeTree]()); err == nil {
			conn.trySend(data)
		}
	}
}

// unregisterConnection removes a connection; the subscription goes with its last one
func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	sub, exists := cm.subscriptions[conn.TransactionID]
	if !exists || !sub.conns[conn] {
		return
	}
	delete(sub.conns, conn)
	close(conn.Send)
	if len(sub.conns) == 0 {
		delete(cm.subscriptions, conn.TransactionID)
	}

	log.Info().
		Str("connection_id", conn.ID).
		Int("transaction_id", conn.TransactionID).
		Msg("connection unregistered")
}

// Refresh reloads a subscribed tree. Subscribers get a loading message, then the
// result; a result overtaken by a newer refresh is dropped.
func (cm *ConnectionManager) Refresh(transactionID int) {
	cm.mu.Lock()
	sub, exists := cm.subscriptions[transactionID]
	if !exists {
		cm.mu.Unlock()
		return
	}
	sub.generation++
	generation := sub.generation
	cm.mu.Unlock()

	cm.publish(transactionID, generation, viewstate.Loading[tradetree.TradeTree](), false)

	go func() {
		ctx, cancel := context.WithTimeout(cm.ctx, cm.config.LoadTimeout)
		defer cancel()

		state := cm.loader.LoadTradeTreeView(ctx, transactionID)
		cm.publish(transactionID, generation, state, true)
	}()
}

// RefreshAll reloads every subscribed tree
func (cm *ConnectionManager) RefreshAll() int {
	cm.mu.Lock()
	ids := make([]int, 0, len(cm.subscriptions))
	for id := range cm.subscriptions {
		ids = append(ids, id)
	}
	cm.mu.Unlock()

	sort.Ints(ids)
	for _, id := range ids {
		cm.Refresh(id)
	}
	return len(ids)
}

func (cm *ConnectionManager) encode(transactionID int, generation uint64, state viewstate.State[tradetree.TradeTree]) ([]byte, error) {
	msg := TreeMessage{
		ID:            uuid.New().String(),
		Type:          MessageTypeTradeTree,
		TransactionID: transactionID,
		Generation:    generation,
		Timestamp:     cm.clock.Now().UTC(),
		State:         state,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tree message: %w", err)
	}
	return data, nil
}

func (cm *ConnectionManager) publish(transactionID int, generation uint64, state viewstate.State[tradetree.TradeTree], final bool) {
	data, err := cm.encode(transactionID, generation, state)
	if err != nil {
		log.Error().Err(err).Int("transaction_id", transactionID).Msg("failed to encode tree message")
		return
	}

	select {
	case cm.broadcastCh <- BroadcastMessage{TransactionID: transactionID, Generation: generation, Data: data, Final: final}:
	default:
		log.Warn().Int("transaction_id", transactionID).Msg("broadcast channel full, dropping message")
	}
}

// handleBroadcast delivers a message unless its subscription is gone or has moved on
func (cm *ConnectionManager) handleBroadcast(message BroadcastMessage) {
	cm.mu.Lock()
	sub, exists := cm.subscriptions[message.TransactionID]
	if !exists {
		cm.mu.Unlock()
		return
	}
	if message.Generation != sub.generation {
		cm.mu.Unlock()
		log.Debug().
			Int("transaction_id", message.TransactionID).
			Uint64("generation", message.Generation).
			Uint64("current_generation", sub.generation).
			Msg("dropping stale trade tree")
		return
	}
	if message.Final {
		sub.latest = message.Data
	}

	targets := make([]*Connection, 0, len(sub.conns))
	for conn := range sub.conns {
		targets = append(targets, conn)
	}
	cm.mu.Unlock()

	for _, conn := range targets {
		if !conn.trySend(message.Data) {
			log.Warn().
				Str("connection_id", conn.ID).
				Msg("connection send buffer full, closing connection")
			cm.unregisterConnection(conn)
			conn.Conn.Close()
		}
	}

	log.Debug().
		Int("transaction_id", message.TransactionID).
		Uint64("generation", message.Generation).
		Int("connections", len(targets)).
		Msg("trade tree broadcasted")
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() Stats {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	stats := Stats{
		ActiveTrees:     len(cm.subscriptions),
		TreeConnections: make(map[string]int, len(cm.subscriptions)),
	}
	for id, sub := range cm.subscriptions {
		stats.TotalConnections += len(sub.conns)
		stats.TreeConnections[strconv.Itoa(id)] = len(sub.conns)
	}
	return stats
}

// trySend queues data without blocking. It is false when the buffer is full or the
// connection is already closed.
func (c *Connection) trySend(data []byte) (sent bool) {
	defer func() {
		if recover() != nil {
			sent = false
		}
	}()
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

// writePump handles sending messages to the websocket connection
func (c *Connection) writePump() {
	ticker := c.Manager.clock.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to websocket")
				return
			}

		case <-ticker.Chan():
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump handles reading messages from the websocket connection
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected websocket close error")
			}
			break
		}

		c.handleClientMessage(message)
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}

// handleClientMessage processes messages received from the client
func (c *Connection) handleClientMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Debug().
			Err(err).
			Str("connection_id", c.ID).
			Msg("ignoring malformed client message")
		return
	}

	switch msg.Action {
	case ClientActionRefresh:
		c.Manager.Refresh(c.TransactionID)
	default:
		log.Debug().
			Str("connection_id", c.ID).
			Str("action", string(msg.Action)).
			Msg("ignoring unknown client action")
	}
}
