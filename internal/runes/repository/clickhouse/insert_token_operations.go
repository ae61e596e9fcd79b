package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

// InsertTokenOperations stores decoded runes operations in ClickHouse, one row per txid.
func (r *Repository) InsertTokenOperations(ctx context.Context, ops []model.TokenOperation) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_token_operations", firstNetwork(ops), err, start)
	}()

	if len(ops) == 0 {
		return nil
	}

	const query = `
INSERT INTO runes_token_operations (
	network,
	txid,
	block_height,
	rune_id,
	operation,
	amount,
	from_address,
	to_address,
	metadata,
	timestamp
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare token operations batch: %w", err)
	}

	for _, op := range ops {
		metadata, metaErr := op.MetadataJSON()
		if metaErr != nil {
			err = fmt.Errorf("encode metadata for %s: %w", op.TxID, metaErr)
			return err
		}

		var amount *big.Int
		if op.Amount != nil {
			amount = op.Amount.Big()
		}

		if err = batch.Append(
			string(op.Network),
			op.TxID,
			op.BlockHeight,
			op.RuneID,
			string(op.Kind),
			amount,
			op.FromAddress,
			op.ToAddress,
			nullableString(metadata),
			op.Timestamp,
		); err != nil {
			return fmt.Errorf("append token operation: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert token operations: %w", err)
	}
	return nil
}

func nullableString(b []byte) *string {
	if b == nil {
		return nil
	}
	s := string(b)
	return &s
}
