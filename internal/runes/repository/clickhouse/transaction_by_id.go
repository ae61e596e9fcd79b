package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

// TransactionByID returns a stored transaction by its txid.
func (r *Repository) TransactionByID(ctx context.Context, network model.Network, txid string) (model.Transaction, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("transaction_by_id", network, err, start)
	}()

	const query = `
SELECT
	network,
	txid,
	block_height,
	block_hash,
	version,
	locktime,
	size,
	vsize,
	weight,
	fee,
	input_count,
	output_count,
	timestamp
FROM runes_transactions FINAL
WHERE network = ? AND txid = ?
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, network, txid)
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("query transaction by id: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Transaction{}, false, fmt.Errorf("iterate transaction by id: %w", err)
		}
		return model.Transaction{}, false, nil
	}

	var (
		tx          model.Transaction
		networkName string
	)
	if err = rows.Scan(
		&networkName,
		&tx.TxID,
		&tx.BlockHeight,
		&tx.BlockHash,
		&tx.Version,
		&tx.LockTime,
		&tx.Size,
		&tx.VSize,
		&tx.Weight,
		&tx.Fee,
		&tx.InputCount,
		&tx.OutputCount,
		&tx.Timestamp,
	); err != nil {
		return model.Transaction{}, false, fmt.Errorf("scan transaction: %w", err)
	}
	tx.Network = model.Network(networkName)
	tx.Timestamp = tx.Timestamp.UTC()

	return tx, true, nil
}
