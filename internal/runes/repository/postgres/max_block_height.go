package postgres

import (
	"context"
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
SELECT COALESCE(MAX(height), 0), COUNT(*)
FROM runes_blocks
WHERE network = $1`

	var height, blocks uint64
	if err = r.exec.QueryRow(ctx, query, string(network)).Scan(&height, &blocks); err != nil {
		return 0, false, fmt.Errorf("query max block height: %w", err)
	}

	return height, blocks > 0, nil
}
