package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/pkg/safe"
	"lukechampine.com/uint128"
)

// TokenOperations returns a page of runes operations, newest first.
func (r *Repository) TokenOperations(ctx context.Context, network model.Network, limit, offset uint64) ([]model.TokenOperation, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("token_operations", network, err, start)
	}()

	if limit == 0 {
		return nil, nil
	}

	n, err := safe.Int64(limit)
	if err != nil {
		return nil, fmt.Errorf("limit: %w", err)
	}
	skip, err := safe.Int64(offset)
	if err != nil {
		return nil, fmt.Errorf("offset: %w", err)
	}

	const query = `
SELECT network, txid, block_height, rune_id, operation, amount::text,
	from_address, to_address, metadata::text, timestamp
FROM runes_token_operations
WHERE network = $1
ORDER BY timestamp DESC, block_height DESC, txid ASC
LIMIT $2 OFFSET $3`

	rows, err := r.exec.Query(ctx, query, string(network), n, skip)
	if err != nil {
		return nil, fmt.Errorf("query token operations: %w", err)
	}
	defer rows.Close()

	var ops []model.TokenOperation
	for rows.Next() {
		var (
			op          model.TokenOperation
			networkName string
			kind        string
			amount      *string
			metadata    *string
		)
		if err = rows.Scan(
			&networkName, &op.TxID, &op.BlockHeight, &op.RuneID, &kind, &amount,
			&op.FromAddress, &op.ToAddress, &metadata, &op.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan token operation: %w", err)
		}

		op.Network = model.Network(networkName)
		op.Kind = model.OperationKind(kind)
		op.Timestamp = op.Timestamp.UTC()
		if amount != nil {
			var v uint128.Uint128
			if v, err = uint128.FromString(*amount); err != nil {
				return nil, fmt.Errorf("parse amount for %s: %w", op.TxID, err)
			}
			op.Amount = &v
		}
		if metadata != nil {
			var meta model.EtchMetadata
			if err = json.Unmarshal([]byte(*metadata), &meta); err != nil {
				return nil, fmt.Errorf("decode metadata for %s: %w", op.TxID, err)
			}
			op.Metadata = &meta
		}

		ops = append(ops, op)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token operations: %w", err)
	}

	return ops, nil
}
