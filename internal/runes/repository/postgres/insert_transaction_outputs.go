package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/jackc/pgx/v5"
)

// InsertTransactionOutputs stores outputs, ignoring (txid, vout) pairs already present.
func (r *Repository) InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transaction_outputs", firstNetwork(outputs), err, start)
	}()

	if len(outputs) == 0 {
		return nil
	}

	const query = `
INSERT INTO runes_transaction_outputs (
	network, block_height, txid, output_index, value, script_type,
	script_hex, address, spent, spending_txid, spending_vin
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (network, txid, output_index) DO NOTHING`

	batch := &pgx.Batch{}
	for _, output := range outputs {
		batch.Queue(query,
			string(output.Network), output.BlockHeight, output.TxID, output.Index, output.Value, output.ScriptType,
			output.ScriptHex, output.Address, output.Spent, output.SpendingTxID, output.SpendingVin,
		)
	}

	if err = r.executeBatch(ctx, batch); err != nil {
		return fmt.Errorf("insert transaction outputs: %w", err)
	}
	return nil
}
