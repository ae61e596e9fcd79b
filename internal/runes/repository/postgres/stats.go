package postgres

import (
	"context"
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
	(SELECT MAX(height) FROM runes_blocks WHERE network = $1 AND status = 'processed'),
	(SELECT COUNT(*) FROM runes_transactions WHERE network = $1),
	(SELECT COUNT(*) FROM runes_token_operations WHERE network = $1)`

	var stats model.Stats
	if err = r.exec.QueryRow(ctx, query, string(network)).Scan(
		&stats.LastIndexedBlock,
		&stats.TotalTransactions,
		&stats.TotalTokenOperations,
	); err != nil {
		return model.Stats{}, fmt.Errorf("query stats: %w", err)
	}

	return stats, nil
}
