package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/chain"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/pkg/safe"
)

// Source implements chain.Source for Bitcoin.
type Source struct {
	rpc             BlockReader
	outputConverter OutputConverter
	network         model.Network
}

// NewSource creates a Source for Bitcoin.
func NewSource(outputConverter OutputConverter, rpc BlockReader, network model.Network) *Source {
	return &Source{
		rpc:             rpc,
		outputConverter: outputConverter,
		network:         network,
	}
}

// CurrentHeight returns the node's best block height.
func (s *Source) CurrentHeight(ctx context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount(ctx)
	if err != nil {
		return 0, classify(ctx, "get block count", err)
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("%w: block count: %w", chain.ErrChainUnavailable, err)
	}
	return height, nil
}

// BlockAt fetches the block at height with its transactions and outputs.
func (s *Source) BlockAt(ctx context.Context, height uint64) (*chain.Block, error) {
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return nil, fmt.Errorf("%w: height %d: %w", chain.ErrNotFound, height, err)
	}
	hash, err := s.rpc.GetBlockHash(ctx, rpcHeight)
	if err != nil {
		return nil, classify(ctx, fmt.Sprintf("get block hash at height %d", height), err)
	}
	src, err := s.rpc.GetBlock(ctx, hash)
	if err != nil {
		return nil, classify(ctx, fmt.Sprintf("get block %s", hash), err)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: get block %s: empty response", chain.ErrChainUnavailable, hash)
	}

	block, err := BuildBlock(src, height, s.network, model.BlockUnprocessed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", chain.ErrChainUnavailable, err)
	}

	txs := make([]model.Transaction, 0, len(src.Transactions))
	outputs := make([]model.TransactionOutput, 0, len(src.Transactions))
	for _, tx := range src.Transactions {
		record, err := BuildTransaction(tx, block)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", chain.ErrChainUnavailable, err)
		}
		txs = append(txs, record)

		txOutputs, err := s.outputConverter.Convert(tx, record.TxID, block.Height)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", chain.ErrChainUnavailable, err)
		}
		outputs = append(outputs, txOutputs...)
	}

	return &chain.Block{
		Block:   block,
		Txs:     txs,
		Outputs: outputs,
		RawTxs:  src.Transactions,
	}, nil
}

// classify maps node errors onto chain sentinels. Cancellation of the
// caller's context is passed through untouched.
func classify(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) && (rpcErr.Code == btcjson.ErrRPCInvalidParameter || rpcErr.Code == btcjson.ErrRPCBlockNotFound) {
		return fmt.Errorf("%s: %w: %w", op, chain.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w: %w", op, chain.ErrChainUnavailable, err)
}
