package model

import (
	"encoding/json"
	"time"

	"lukechampine.com/uint128"
)

// OperationKind names a decoded runes protocol event.
type OperationKind string

const (
	OperationEtch     OperationKind = "etch"
	OperationMint     OperationKind = "mint"
	OperationTransfer OperationKind = "transfer"
	OperationBurn     OperationKind = "burn"
)

// EtchMetadata is attached to etch operations.
type EtchMetadata struct {
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// TokenOperation is a runes operation found in a transaction. A transaction yields at most one.
type TokenOperation struct {
	Network     Network          `json:"network"`
	TxID        string           `json:"txid"`
	BlockHeight uint64           `json:"block_height"`
	RuneID      *string          `json:"rune_id"`
	Kind        OperationKind    `json:"operation"`
	Amount      *uint128.Uint128 `json:"-"`
	FromAddress *string          `json:"from_address"`
	ToAddress   *string          `json:"to_address"`
	Metadata    *EtchMetadata    `json:"metadata"`
	Timestamp   time.Time        `json:"timestamp"`
}

// MarshalJSON renders the 128-bit amount as a decimal string.
func (o TokenOperation) MarshalJSON() ([]byte, error) {
	type alias TokenOperation
	var amount *string
	if o.Amount != nil {
		s := o.Amount.String()
		amount = &s
	}
	return json.Marshal(struct {
		alias
		Amount *string `json:"amount"`
	}{alias: alias(o), Amount: amount})
}

// MetadataJSON returns metadata encoded for storage, or nil when absent.
func (o TokenOperation) MetadataJSON() ([]byte, error) {
	if o.Metadata == nil {
		return nil, nil
	}
	return json.Marshal(o.Metadata)
}
