package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/jackc/pgx/v5"
)

// InsertTokenOperations stores decoded runes operations, one per txid.
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
	network, txid, block_height, rune_id, operation, amount,
	from_address, to_address, metadata, timestamp
) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9::jsonb, $10)
ON CONFLICT (network, txid) DO NOTHING`

	batch := &pgx.Batch{}
	for _, op := range ops {
		metadata, metaErr := op.MetadataJSON()
		if metaErr != nil {
			err = fmt.Errorf("encode metadata for %s: %w", op.TxID, metaErr)
			return err
		}

		var amount *string
		if op.Amount != nil {
			s := op.Amount.String()
			amount = &s
		}

		batch.Queue(query,
			string(op.Network), op.TxID, op.BlockHeight, op.RuneID, string(op.Kind), amount,
			op.FromAddress, op.ToAddress, nullableString(metadata), op.Timestamp,
		)
	}

	if err = r.executeBatch(ctx, batch); err != nil {
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
