package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/jackc/pgx/v5"
)

// InsertTransactions stores transaction rows, ignoring txids already present.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", firstNetwork(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO runes_transactions (
	network, txid, block_height, block_hash, version, locktime,
	size, vsize, weight, fee, input_count, output_count, timestamp
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (network, txid) DO NOTHING`

	batch := &pgx.Batch{}
	for _, tx := range txs {
		batch.Queue(query,
			string(tx.Network), tx.TxID, tx.BlockHeight, tx.BlockHash, tx.Version, tx.LockTime,
			tx.Size, tx.VSize, tx.Weight, tx.Fee, tx.InputCount, tx.OutputCount, tx.Timestamp,
		)
	}

	if err = r.executeBatch(ctx, batch); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
