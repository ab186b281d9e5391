package ethrpc

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nameplate/pkg/platform/circuit"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// fakeNode answers eth_getBalance and eth_call; failing switches it to HTTP 503.
type fakeNode struct {
	failing atomic.Bool
	revert  atomic.Bool
	hits    atomic.Int32
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.hits.Add(1)
	if n.failing.Load() {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch {
	case req.Method == "eth_call" && n.revert.Load():
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": req.ID,
			"error": map[string]any{"code": 3, "message": "execution reverted"},
		})
	case req.Method == "eth_call":
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": "0x0102"})
	case req.Method == "eth_getBalance":
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": "0xde0b6b3a7640000"})
	default:
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": req.ID,
			"error": map[string]any{"code": -32601, "message": "method not found"},
		})
	}
}

func newPool(opts ...circuit.Option) *Pool {
	return NewPool(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithBreakerOptions(opts...),
	)
}

func TestEndpoint_Calls(t *testing.T) {
	node := &fakeNode{}
	srv := httptest.NewServer(node)
	defer srv.Close()

	pool := newPool()
	defer pool.Close()
	ep := pool.Endpoint(srv.URL)
	assert.Same(t, ep, pool.Endpoint(srv.URL), "endpoints are shared per url")

	bal, err := ep.BalanceAt(context.Background(), common.HexToAddress("0x01"), nil)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", bal.String())

	to := common.HexToAddress("0x02")
	out, err := ep.CallContract(context.Background(), ethereum.CallMsg{To: &to}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, out)
}

func TestEndpoint_BreakerOpensAndRecovers(t *testing.T) {
	node := &fakeNode{}
	srv := httptest.NewServer(node)
	defer srv.Close()

	now := time.Unix(1_700_000_000, 0)
	pool := newPool(
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	ep := pool.Endpoint(srv.URL)
	ctx := context.Background()
	addr := common.HexToAddress("0x01")

	node.failing.Store(true)
	for range 2 {
		_, err := ep.BalanceAt(ctx, addr, nil)
		require.Error(t, err)
	}
	hits := node.hits.Load()

	_, err := ep.BalanceAt(ctx, addr, nil)
	require.ErrorIs(t, err, circuit.ErrOpen)
	assert.Equal(t, hits, node.hits.Load(), "open circuit does not reach the node")

	node.failing.Store(false)
	now = now.Add(time.Minute)
	_, err = ep.BalanceAt(ctx, addr, nil)
	require.NoError(t, err)
	assert.False(t, ep.breaker.IsOpen())
}

func TestPool_NilLoggerKeepsDefault(t *testing.T) {
	node := &fakeNode{}
	node.failing.Store(true)
	srv := httptest.NewServer(node)
	defer srv.Close()

	pool := NewPool(WithLogger(nil), WithBreakerOptions(circuit.WithFailureThreshold(1)))
	ep := pool.Endpoint(srv.URL)

	assert.NotPanics(t, func() {
		_, err := ep.BalanceAt(context.Background(), common.HexToAddress("0x01"), nil)
		require.Error(t, err)
	})
	assert.True(t, ep.breaker.IsOpen(), "the transition was logged and recorded")
}

func TestEndpoint_RevertDoesNotTripBreaker(t *testing.T) {
	node := &fakeNode{}
	node.revert.Store(true)
	srv := httptest.NewServer(node)
	defer srv.Close()

	ep := newPool(circuit.WithFailureThreshold(1)).Endpoint(srv.URL)
	to := common.HexToAddress("0x02")
	_, err := ep.CallContract(context.Background(), ethereum.CallMsg{To: &to}, nil)
	require.Error(t, err)
	assert.False(t, ep.breaker.IsOpen())
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "https://eth-mainnet.g.alchemy.com", redact("https://eth-mainnet.g.alchemy.com/v2/SECRET"))
	assert.Equal(t, "https://rpc.example", redact("https://rpc.example?key=SECRET"))
	assert.Equal(t, "rpc", redact("not a url"))
}
