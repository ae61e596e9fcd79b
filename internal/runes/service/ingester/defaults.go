package ingester

import "time"

const (
	defaultBatchSize    uint64 = 10
	defaultPollInterval        = 10 * time.Second
	errorSleepDuration         = 5 * time.Second

	// missingHeightLimit bounds how many gaps are requeued on startup.
	missingHeightLimit uint64 = 10_000
	maxPendingHeights         = 10_000

	transactionFlushThreshold = 1000
	outputFlushThreshold      = 10_000
)
