package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/jackc/pgx/v5"
)

// TransactionByID returns a stored transaction by its txid.
func (r *Repository) TransactionByID(ctx context.Context, network model.Network, txid string) (model.Transaction, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("transaction_by_id", network, err, start)
	}()

	const query = `
SELECT network, txid, block_height, block_hash, version, locktime,
	size, vsize, weight, fee, input_count, output_count, timestamp
FROM runes_transactions
WHERE network = $1 AND txid = $2`

	var (
		tx          model.Transaction
		networkName string
	)
	err = r.exec.QueryRow(ctx, query, string(network), txid).Scan(
		&networkName, &tx.TxID, &tx.BlockHeight, &tx.BlockHash, &tx.Version, &tx.LockTime,
		&tx.Size, &tx.VSize, &tx.Weight, &tx.Fee, &tx.InputCount, &tx.OutputCount, &tx.Timestamp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return model.Transaction{}, false, nil
	}
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("query transaction by id: %w", err)
	}

	tx.Network = model.Network(networkName)
	tx.Timestamp = tx.Timestamp.UTC()
	return tx, true, nil
}
