package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

// MarkBlocksProcessed flips the status of the given blocks to processed.
func (r *Repository) MarkBlocksProcessed(ctx context.Context, network model.Network, heights []uint64) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("mark_blocks_processed", network, err, start)
	}()

	if len(heights) == 0 {
		return nil
	}

	ids, err := int64Heights(heights)
	if err != nil {
		return err
	}

	const query = `
UPDATE runes_blocks
SET status = 'processed', updated_at = now()
WHERE network = $1 AND height = ANY($2)`

	if _, err = r.exec.Exec(ctx, query, string(network), ids); err != nil {
		return fmt.Errorf("mark blocks processed: %w", err)
	}
	return nil
}
