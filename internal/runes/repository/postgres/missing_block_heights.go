package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/pkg/safe"
)

// MissingBlockHeights returns heights in [from, to] that have no processed block, lowest first.
func (r *Repository) MissingBlockHeights(ctx context.Context, network model.Network, from, to, limit uint64) ([]uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("missing_block_heights", network, err, start)
	}()

	if limit == 0 || to < from {
		return nil, nil
	}

	lo, err := safe.Int64(from)
	if err != nil {
		return nil, fmt.Errorf("from height: %w", err)
	}
	hi, err := safe.Int64(to)
	if err != nil {
		return nil, fmt.Errorf("to height: %w", err)
	}
	n, err := safe.Int64(limit)
	if err != nil {
		return nil, fmt.Errorf("limit: %w", err)
	}

	const query = `
SELECT h
FROM generate_series($1::bigint, $2::bigint) AS h
WHERE NOT EXISTS (
	SELECT 1
	FROM runes_blocks b
	WHERE b.network = $3 AND b.height = h AND b.status = 'processed'
)
ORDER BY h
LIMIT $4`

	rows, err := r.exec.Query(ctx, query, lo, hi, string(network), n)
	if err != nil {
		return nil, fmt.Errorf("query missing block heights: %w", err)
	}
	defer rows.Close()

	var heights []uint64
	for rows.Next() {
		var height uint64
		if err = rows.Scan(&height); err != nil {
			return nil, fmt.Errorf("scan missing block height: %w", err)
		}
		heights = append(heights, height)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate missing block heights: %w", err)
	}

	return heights, nil
}
