package bitcoin

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// NodeClient is the subset of rpcclient.Client used by the adapter.
	NodeClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlock(blockHash *chainhash.Hash) (*wire.MsgBlock, error)
	}

	// BlockReader exposes context-bounded node reads.
	BlockReader interface {
		GetBlockCount(ctx context.Context) (int64, error)
		GetBlockHash(ctx context.Context, height int64) (*chainhash.Hash, error)
		GetBlock(ctx context.Context, hash *chainhash.Hash) (*wire.MsgBlock, error)
	}

	// ScriptDecoder classifies output scripts and extracts a single address when one exists.
	ScriptDecoder interface {
		Decode(pkScript []byte) (scriptType string, address *string)
	}

	// OutputConverter turns raw transaction outputs into domain outputs.
	OutputConverter interface {
		Convert(tx *wire.MsgTx, txid string, blockHeight uint64) ([]model.TransactionOutput, error)
	}
)
