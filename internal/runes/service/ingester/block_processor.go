package ingester

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/chain"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"go.uber.org/zap"
)

type blockProcessor struct {
	source    Source
	repo      Repository
	publisher Publisher
	decode    func(*wire.MsgTx) (model.TokenOperation, bool)
	network   model.Network
	metrics   Metrics
	logger    *zap.Logger
}

// Process fetches one block and persists it: block row first, then
// transactions and outputs, then decoded operations, then the processed mark.
func (p *blockProcessor) Process(ctx context.Context, height uint64) (err error) {
	started := time.Now()
	defer func() {
		p.metrics.ObserveProcessHeight(err, height, started)
	}()

	block, err := p.source.BlockAt(ctx, height)
	if err != nil {
		return fmt.Errorf("fetch block height %d: %w", height, err)
	}

	if err = p.repo.InsertBlocks(ctx, []model.Block{block.Block}); err != nil {
		return fmt.Errorf("insert block %d: %w", height, err)
	}
	if err = p.writeTransactions(ctx, block); err != nil {
		return fmt.Errorf("write transactions of block %d: %w", height, err)
	}

	ops := p.decodeOperations(block)
	if len(ops) > 0 {
		if err = p.repo.InsertTokenOperations(ctx, ops); err != nil {
			return fmt.Errorf("insert token operations of block %d: %w", height, err)
		}
	}

	if err = p.repo.MarkBlocksProcessed(ctx, p.network, []uint64{height}); err != nil {
		return fmt.Errorf("mark block %d processed: %w", height, err)
	}

	for _, op := range ops {
		p.metrics.ObserveTokenOperation(op.Kind)
	}
	p.publish(ctx, height, ops)

	p.logger.Debug("block processed",
		zap.Uint64("height", height),
		zap.Int("txs", len(block.Txs)),
		zap.Int("runes_operations", len(ops)))
	return nil
}

func (p *blockProcessor) writeTransactions(ctx context.Context, block *chain.Block) error {
	for txs := range slices.Chunk(block.Txs, transactionFlushThreshold) {
		if err := p.repo.InsertTransactions(ctx, txs); err != nil {
			return err
		}
	}
	for outputs := range slices.Chunk(block.Outputs, outputFlushThreshold) {
		if err := p.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
			return err
		}
	}
	return nil
}

func (p *blockProcessor) decodeOperations(block *chain.Block) []model.TokenOperation {
	var ops []model.TokenOperation
	for _, raw := range block.RawTxs {
		op, ok := p.decode(raw)
		if !ok {
			continue
		}
		op.Network = p.network
		op.BlockHeight = block.Block.Height
		op.Timestamp = block.Block.Timestamp
		ops = append(ops, op)
	}
	return ops
}

func (p *blockProcessor) publish(ctx context.Context, height uint64, ops []model.TokenOperation) {
	if p.publisher == nil || len(ops) == 0 {
		return
	}
	if err := p.publisher.Publish(ctx, ops); err != nil {
		p.logger.Warn("publish token operations failed", zap.Uint64("height", height), zap.Error(err))
	}
}
