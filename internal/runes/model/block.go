// Package model defines domain models for runes ingestion.
package model

import "time"

// BlockStatus describes processing status of a block record.
type BlockStatus string

const (
	// BlockUnprocessed marks a block whose transactions may not be fully persisted yet.
	BlockUnprocessed BlockStatus = "unprocessed"
	// BlockProcessed marks a block whose transactions, outputs and token operations are persisted.
	BlockProcessed BlockStatus = "processed"
)

// Block represents a persisted block header.
type Block struct {
	Network    Network     `json:"network"`
	Height     uint64      `json:"height"`
	Hash       string      `json:"hash"`
	PrevHash   string      `json:"prev_hash"`
	Timestamp  time.Time   `json:"timestamp"`
	MerkleRoot string      `json:"merkle_root"`
	Version    int32       `json:"version"`
	Bits       uint32      `json:"bits"`
	Nonce      uint32      `json:"nonce"`
	Size       uint32      `json:"size"`
	TXCount    uint32      `json:"tx_count"`
	Status     BlockStatus `json:"status"`
}
