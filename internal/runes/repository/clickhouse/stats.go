package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

// Stats reports the highest processed height and row totals for a network.
func (r *Repository) Stats(ctx context.Context, network model.Network) (model.Stats, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("stats", network, err, start)
	}()

	const query = `
SELECT
	(
		SELECT count()
		FROM (
			SELECT height
			FROM runes_blocks
			WHERE network = ?
			GROUP BY height
			HAVING ` + latestStatus + ` = 'processed'
		)
	) AS processed_blocks,
	(
		SELECT max(height)
		FROM (
			SELECT height
			FROM runes_blocks
			WHERE network = ?
			GROUP BY height
			HAVING ` + latestStatus + ` = 'processed'
		)
	) AS last_processed,
	(SELECT uniqExact(txid) FROM runes_transactions WHERE network = ?) AS transactions,
	(SELECT uniqExact(txid) FROM runes_token_operations WHERE network = ?) AS token_operations`

	rows, err := r.conn.Query(ctx, query, network, network, network, network)
	if err != nil {
		return model.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Stats{}, fmt.Errorf("iterate stats: %w", err)
		}
		err = errors.New("stats not found")
		return model.Stats{}, err
	}

	var (
		stats           model.Stats
		processedBlocks uint64
		lastProcessed   uint64
	)
	if err = rows.Scan(&processedBlocks, &lastProcessed, &stats.TotalTransactions, &stats.TotalTokenOperations); err != nil {
		return model.Stats{}, fmt.Errorf("scan stats: %w", err)
	}
	if processedBlocks > 0 {
		stats.LastIndexedBlock = &lastProcessed
	}

	return stats, nil
}
