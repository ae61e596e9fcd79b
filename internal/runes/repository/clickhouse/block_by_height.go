package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

// BlockByHeight returns the latest version of the block stored at height.
func (r *Repository) BlockByHeight(ctx context.Context, network model.Network, height uint64) (model.Block, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_by_height", network, err, start)
	}()

	const query = `
SELECT
	network,
	height,
	hash,
	prev_hash,
	timestamp,
	merkle_root,
	version,
	bits,
	nonce,
	size,
	tx_count,
	status
FROM runes_blocks FINAL
WHERE network = ? AND height = ?
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, network, height)
	if err != nil {
		return model.Block{}, false, fmt.Errorf("query block by height: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Block{}, false, fmt.Errorf("iterate block by height: %w", err)
		}
		return model.Block{}, false, nil
	}

	var (
		block       model.Block
		networkName string
		status      string
	)
	if err = rows.Scan(
		&networkName,
		&block.Height,
		&block.Hash,
		&block.PrevHash,
		&block.Timestamp,
		&block.MerkleRoot,
		&block.Version,
		&block.Bits,
		&block.Nonce,
		&block.Size,
		&block.TXCount,
		&status,
	); err != nil {
		return model.Block{}, false, fmt.Errorf("scan block: %w", err)
	}
	block.Network = model.Network(networkName)
	block.Status = model.BlockStatus(status)
	block.Timestamp = block.Timestamp.UTC()

	return block, true, nil
}
