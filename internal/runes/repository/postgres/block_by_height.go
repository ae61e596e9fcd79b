package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/jackc/pgx/v5"
)

// BlockByHeight returns the block stored at height.
func (r *Repository) BlockByHeight(ctx context.Context, network model.Network, height uint64) (model.Block, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("block_by_height", network, err, start)
	}()

	const query = `
SELECT network, height, hash, prev_hash, timestamp, merkle_root,
	version, bits, nonce, size, tx_count, status
FROM runes_blocks
WHERE network = $1 AND height = $2`

	var (
		block       model.Block
		networkName string
		status      string
	)
	err = r.exec.QueryRow(ctx, query, string(network), height).Scan(
		&networkName, &block.Height, &block.Hash, &block.PrevHash, &block.Timestamp, &block.MerkleRoot,
		&block.Version, &block.Bits, &block.Nonce, &block.Size, &block.TXCount, &status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return model.Block{}, false, nil
	}
	if err != nil {
		return model.Block{}, false, fmt.Errorf("query block by height: %w", err)
	}

	block.Network = model.Network(networkName)
	block.Status = model.BlockStatus(status)
	block.Timestamp = block.Timestamp.UTC()
	return block, true, nil
}
