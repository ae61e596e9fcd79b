package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/jackc/pgx/v5"
)

// InsertBlocks upserts block rows; the latest write wins on (network, height).
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", firstNetwork(blocks), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	const query = `
INSERT INTO runes_blocks (
	network, height, hash, prev_hash, timestamp, merkle_root,
	version, bits, nonce, size, tx_count, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (network, height) DO UPDATE SET
	hash = EXCLUDED.hash,
	prev_hash = EXCLUDED.prev_hash,
	timestamp = EXCLUDED.timestamp,
	merkle_root = EXCLUDED.merkle_root,
	version = EXCLUDED.version,
	bits = EXCLUDED.bits,
	nonce = EXCLUDED.nonce,
	size = EXCLUDED.size,
	tx_count = EXCLUDED.tx_count,
	status = EXCLUDED.status,
	updated_at = now()`

	batch := &pgx.Batch{}
	for _, block := range blocks {
		batch.Queue(query,
			string(block.Network), block.Height, block.Hash, block.PrevHash, block.Timestamp, block.MerkleRoot,
			block.Version, block.Bits, block.Nonce, block.Size, block.TXCount, string(block.Status),
		)
	}

	if err = r.executeBatch(ctx, batch); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
