package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lhsffl/go/internal/events"
	"github.com/mcdev12/lhsffl/go/internal/tradetree"
	"github.com/mcdev12/lhsffl/go/internal/viewstate"
)

var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeLoader returns a tree for every id except the failing ones. Loads wait for release
// when it is set.
type fakeLoader struct {
	mu      sync.Mutex
	calls   []int
	failing map[int]bool
	release chan struct{}
}

func (f *fakeLoader) LoadTradeTreeView(ctx context.Context, transactionID int) viewstate.State[tradetree.TradeTree] {
	f.mu.Lock()
	f.calls = append(f.calls, transactionID)
	f.mu.Unlock()

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return viewstate.Failed[tradetree.TradeTree](ctx.Err())
		}
	}
	if f.failing[transactionID] {
		return viewstate.Failed[tradetree.TradeTree](errors.New("trade tree unavailable"))
	}
	return viewstate.Ready(tradetree.TradeTree{OriginID: transactionID, Title: "Team A & Team B"})
}

func (f *fakeLoader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestManager(t *testing.T, loader TreeLoader) *ConnectionManager {
	t.Helper()
	cm := NewConnectionManager(DefaultConnectionConfig(), loader, clockwork.NewFakeClockAt(testNow))
	t.Cleanup(cm.Stop)
	return cm
}

// fakeConnection registers a socketless connection that only buffers messages
func fakeConnection(cm *ConnectionManager, transactionID int) *Connection {
	conn := &Connection{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		Send:          make(chan []byte, 16),
		Manager:       cm,
	}
	cm.registerConnection(conn)
	return conn
}

// drainBroadcasts hands n queued broadcasts to handleBroadcast
func drainBroadcasts(t *testing.T, cm *ConnectionManager, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case msg := <-cm.broadcastCh:
			cm.handleBroadcast(msg)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for broadcast %d of %d", i+1, n)
		}
	}
}

func received(t *testing.T, conn *Connection) []TreeMessage {
	t.Helper()
	var msgs []TreeMessage
	for {
		select {
		case data := <-conn.Send:
			var msg TreeMessage
			require.NoError(t, json.Unmarshal(data, &msg))
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func TestConnectionManager_StaleResultsAreDropped(t *testing.T) {
	loader := &fakeLoader{release: make(chan struct{})}
	cm := newTestManager(t, loader)

	conn := fakeConnection(cm, 10)
	cm.Refresh(10)

	// both loads are in flight; the first is superseded by the refresh
	close(loader.release)
	drainBroadcasts(t, cm, 4)

	msgs := received(t, conn)
	require.Len(t, msgs, 2)
	assert.Equal(t, viewstate.StatusLoading, msgs[0].State.Status())
	assert.Equal(t, uint64(2), msgs[0].Generation)
	assert.Equal(t, viewstate.StatusReady, msgs[1].State.Status())
	assert.Equal(t, uint64(2), msgs[1].Generation)
	assert.Equal(t, 2, loader.callCount())

	tree, ok := msgs[1].State.Data()
	require.True(t, ok)
	assert.Equal(t, 10, tree.OriginID)
	assert.Equal(t, MessageTypeTradeTree, msgs[1].Type)
	assert.True(t, msgs[1].Timestamp.Equal(testNow))
}

func TestConnectionManager_LateSubscriberGetsLatest(t *testing.T) {
	loader := &fakeLoader{failing: map[int]bool{10: true}}
	cm := newTestManager(t, loader)

	first := fakeConnection(cm, 10)
	drainBroadcasts(t, cm, 2)
	require.Len(t, received(t, first), 2)

	second := fakeConnection(cm, 10)
	msgs := received(t, second)
	require.Len(t, msgs, 1)
	assert.Equal(t, viewstate.StatusError, msgs[0].State.Status())
	assert.EqualError(t, msgs[0].State.Err(), "trade tree unavailable")
	assert.Equal(t, 1, loader.callCount(), "late subscribers do not reload")
}

func TestConnectionManager_SubscriberDuringLoadGetsLoading(t *testing.T) {
	loader := &fakeLoader{release: make(chan struct{})}
	cm := newTestManager(t, loader)

	first := fakeConnection(cm, 10)
	second := fakeConnection(cm, 10)

	msgs := received(t, second)
	require.Len(t, msgs, 1)
	assert.Equal(t, viewstate.StatusLoading, msgs[0].State.Status())

	close(loader.release)
	drainBroadcasts(t, cm, 2)

	assert.Len(t, received(t, first), 2)
	msgs = received(t, second)
	require.Len(t, msgs, 2)
	assert.Equal(t, viewstate.StatusReady, msgs[1].State.Status())
}

func TestConnectionManager_UnregisterDropsSubscription(t *testing.T) {
	cm := newTestManager(t, &fakeLoader{})

	a := fakeConnection(cm, 10)
	b := fakeConnection(cm, 20)
	drainBroadcasts(t, cm, 4)

	stats := cm.GetConnectionStats()
	assert.Equal(t, 2, stats.TotalConnections)
	assert.Equal(t, 2, stats.ActiveTrees)
	assert.Equal(t, map[string]int{"10": 1, "20": 1}, stats.TreeConnections)

	cm.unregisterConnection(a)
	cm.unregisterConnection(a)

	stats = cm.GetConnectionStats()
	assert.Equal(t, 1, stats.ActiveTrees)
	assert.False(t, a.trySend([]byte("x")), "closed connections refuse messages")
	assert.True(t, b.trySend([]byte("x")))

	cm.Refresh(10)
	select {
	case msg := <-cm.broadcastCh:
		t.Fatalf("unexpected broadcast for tree %d", msg.TransactionID)
	default:
	}
}

func TestWebSocketHandler(t *testing.T) {
	loader := &fakeLoader{}
	cm := newTestManager(t, loader)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go cm.Start(ctx)

	mux := http.NewServeMux()
	NewWebSocketHandler(cm).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/trade-tree?transaction_id=10"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	readMessage := func() TreeMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg TreeMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	assert.Equal(t, viewstate.StatusLoading, readMessage().State.Status())
	msg := readMessage()
	assert.Equal(t, viewstate.StatusReady, msg.State.Status())
	assert.Equal(t, 10, msg.TransactionID)

	require.NoError(t, conn.WriteJSON(ClientMessage{Action: ClientActionRefresh}))
	msg = readMessage()
	assert.Equal(t, viewstate.StatusLoading, msg.State.Status())
	assert.Equal(t, uint64(2), msg.Generation)
	assert.Equal(t, viewstate.StatusReady, readMessage().State.Status())

	resp, err := http.Get(srv.URL + "/ws/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	var stats Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalConnections)
}

func TestWebSocketHandler_BadTransactionID(t *testing.T) {
	mux := http.NewServeMux()
	NewWebSocketHandler(newTestManager(t, &fakeLoader{})).RegisterRoutes(mux)

	for _, query := range []string{"", "?transaction_id=abc", "?transaction_id=0"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/trade-tree"+query, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

type fakeInvalidator struct {
	prefixes []string
}

func (f *fakeInvalidator) InvalidateCache(prefix string) int {
	f.prefixes = append(f.prefixes, prefix)
	return 3
}

func TestEventConsumer_HandleEnvelope(t *testing.T) {
	cm := newTestManager(t, &fakeLoader{})
	fakeConnection(cm, 10)
	fakeConnection(cm, 20)
	drainBroadcasts(t, cm, 4)

	invalidator := &fakeInvalidator{}
	ec := &EventConsumer{connectionManager: cm, invalidator: invalidator}

	refreshed := ec.handleEnvelope(events.Envelope{EventID: "e1", EventType: events.EventTypeTransactionsSynced})
	assert.Equal(t, 2, refreshed)
	assert.Equal(t, []string{"/transactions"}, invalidator.prefixes)

	refreshed = ec.handleEnvelope(events.Envelope{EventID: "e2", EventType: "PlayersSynced"})
	assert.Equal(t, 0, refreshed)
	assert.Len(t, invalidator.prefixes, 1)

	noCache := &EventConsumer{connectionManager: cm}
	assert.Equal(t, 2, noCache.handleEnvelope(events.Envelope{EventType: events.EventTypeTransactionsSynced}))
}
