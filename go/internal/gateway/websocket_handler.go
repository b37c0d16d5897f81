package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles websocket upgrade requests for trade tree subscriptions
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
	}
}

// HandleTradeTreeConnection subscribes a websocket to the tree of ?transaction_id=
func (h *WebSocketHandler) HandleTradeTreeConnection(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("transaction_id")
	if idStr == "" {
		http.Error(w, "transaction_id is required", http.StatusBadRequest)
		return
	}

	transactionID, err := strconv.Atoi(idStr)
	if err != nil || transactionID <= 0 {
		http.Error(w, "invalid transaction_id", http.StatusBadRequest)
		return
	}

	if err := h.connectionManager.UpgradeConnection(w, r, transactionID); err != nil {
		// the upgrader has already replied to the client
		log.Error().
			Err(err).
			Int("transaction_id", transactionID).
			Msg("failed to upgrade websocket connection")
		return
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	stats := h.connectionManager.GetConnectionStats()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		log.Error().Err(err).Msg("failed to write connection stats")
	}
}

// RegisterRoutes registers websocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/trade-tree", h.HandleTradeTreeConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}
