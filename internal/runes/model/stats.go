package model

// Stats summarizes indexing progress for liveness reporting.
type Stats struct {
	LastIndexedBlock     *uint64 `json:"last_indexed_block"`
	TotalTransactions    uint64  `json:"total_transactions"`
	TotalTokenOperations uint64  `json:"total_runes_transactions"`
}
