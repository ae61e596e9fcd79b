package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
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

	const query = `
WITH toUInt64(?) AS lo, toUInt64(?) AS hi
SELECT number AS height
FROM numbers(lo, hi - lo + 1) AS m
LEFT ANTI JOIN (
	SELECT height
	FROM runes_blocks
	WHERE network = ? AND height >= lo AND height <= hi
	GROUP BY height
	HAVING ` + latestStatus + ` = 'processed'
) AS b ON b.height = m.number
ORDER BY height
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, from, to, network, limit)
	if err != nil {
		return nil, fmt.Errorf("query missing block heights: %w", err)
	}
	defer closeRows(rows, &err)

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
