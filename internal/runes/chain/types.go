// Package chain defines interfaces and structs shared between runes ingestion components.
package chain

import (
	"context"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

// Source provides chain head and full blocks for ingestion.
type Source interface {
	CurrentHeight(ctx context.Context) (uint64, error)
	BlockAt(ctx context.Context, height uint64) (*Block, error)
}

// Block wraps a block header, its transactions and outputs, and the raw
// transactions in block order for protocol decoding.
type Block struct {
	Block   model.Block
	Txs     []model.Transaction
	Outputs []model.TransactionOutput
	RawTxs  []*wire.MsgTx
}
