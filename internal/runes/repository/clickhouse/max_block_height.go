package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

// MaxBlockHeight returns the highest stored block height for a network.
// The boolean is false when no blocks are stored.
func (r *Repository) MaxBlockHeight(ctx context.Context, network model.Network) (uint64, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_block_height", network, err, start)
	}()

	const query = `
SELECT
	max(height) AS max_height,
	count() AS blocks
FROM runes_blocks
WHERE network = ?`

	rows, err := r.conn.Query(ctx, query, network)
	if err != nil {
		return 0, false, fmt.Errorf("query max block height: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		err = errors.New("max block height not found")
		return 0, false, err
	}

	var height, blocks uint64
	if err = rows.Scan(&height, &blocks); err != nil {
		return 0, false, fmt.Errorf("scan max block height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max block height: %w", err)
	}

	return height, blocks > 0, nil
}
