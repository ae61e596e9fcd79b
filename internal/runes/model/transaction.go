package model

import "time"

// Transaction represents a transaction with the metadata kept for querying.
type Transaction struct {
	Network     Network   `json:"network"`
	TxID        string    `json:"txid"`
	BlockHeight uint64    `json:"block_height"`
	BlockHash   string    `json:"block_hash"`
	Version     int32     `json:"version"`
	LockTime    uint32    `json:"locktime"`
	Size        uint32    `json:"size"`
	VSize       uint32    `json:"vsize"`
	Weight      uint32    `json:"weight"`
	Fee         *uint64   `json:"fee"`
	InputCount  uint32    `json:"input_count"`
	OutputCount uint32    `json:"output_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// TransactionOutput represents an output produced by a transaction.
// Spent status is written once at indexing time and never updated.
type TransactionOutput struct {
	Network      Network `json:"network"`
	BlockHeight  uint64  `json:"block_height"`
	TxID         string  `json:"txid"`
	Index        uint32  `json:"vout"`
	Value        uint64  `json:"value"`
	ScriptType   string  `json:"script_type"`
	ScriptHex    string  `json:"script_pubkey"`
	Address      *string `json:"address"`
	Spent        bool    `json:"spent"`
	SpendingTxID *string `json:"spending_txid"`
	SpendingVin  *uint32 `json:"spending_vin"`
}
