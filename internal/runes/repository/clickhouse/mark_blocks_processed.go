package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

// MarkBlocksProcessed re-inserts the given blocks with processed status.
func (r *Repository) MarkBlocksProcessed(ctx context.Context, network model.Network, heights []uint64) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("mark_blocks_processed", network, err, start)
	}()

	if len(heights) == 0 {
		return nil
	}

	const query = `
INSERT INTO runes_blocks (
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
)
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
	'processed'
FROM runes_blocks FINAL
WHERE network = ? AND height IN ?`

	if err = r.conn.Exec(ctx, query, network, heights); err != nil {
		return fmt.Errorf("mark blocks processed: %w", err)
	}
	return nil
}
