// Package bitcoin implements the chain adapter over a bitcoin node RPC endpoint.
package bitcoin

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// RPCClient wraps a node client with per-call timeouts and metrics instrumentation.
type RPCClient struct {
	client     NodeClient
	rpcMetrics RPCMetrics
	timeout    time.Duration
}

// NewRPCClient constructs an instrumented RPC client. A zero timeout leaves calls bounded only by ctx.
func NewRPCClient(client NodeClient, rpcMetrics RPCMetrics, timeout time.Duration) *RPCClient {
	return &RPCClient{
		client:     client,
		rpcMetrics: rpcMetrics,
		timeout:    timeout,
	}
}

// GetBlockCount returns the height of the node's best chain.
func (r *RPCClient) GetBlockCount(ctx context.Context) (count int64, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_count", err, started)
	}()
	return bounded(ctx, r.timeout, r.client.GetBlockCount)
}

// GetBlockHash returns the block hash for a height.
func (r *RPCClient) GetBlockHash(ctx context.Context, height int64) (hash *chainhash.Hash, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block_hash", err, started)
	}()
	return bounded(ctx, r.timeout, func() (*chainhash.Hash, error) {
		return r.client.GetBlockHash(height)
	})
}

// GetBlock returns the raw block including witness data.
func (r *RPCClient) GetBlock(ctx context.Context, hash *chainhash.Hash) (block *wire.MsgBlock, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("get_block", err, started)
	}()
	return bounded(ctx, r.timeout, func() (*wire.MsgBlock, error) {
		return r.client.GetBlock(hash)
	})
}

// bounded runs call and gives up when ctx ends or timeout elapses.
// The rpcclient calls are not cancelable, so an abandoned call finishes in the background.
func bounded[T any](ctx context.Context, timeout time.Duration, call func() (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := call()
		done <- result{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-done:
		return res.value, res.err
	}
}
