package ingester

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/chain"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Source interface {
		CurrentHeight(ctx context.Context) (uint64, error)
		BlockAt(ctx context.Context, height uint64) (*chain.Block, error)
	}

	// Repository is the persistence contract of the ingestion pipeline. Inserts are idempotent
	// on height, txid, (txid, vout) and txid respectively.
	Repository interface {
		MaxBlockHeight(ctx context.Context, network model.Network) (uint64, bool, error)
		MissingBlockHeights(ctx context.Context, network model.Network, from, to, limit uint64) ([]uint64, error)
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		MarkBlocksProcessed(ctx context.Context, network model.Network, heights []uint64) error
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
		InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error
		InsertTokenOperations(ctx context.Context, ops []model.TokenOperation) error
	}

	BlockProcessor interface {
		Process(ctx context.Context, height uint64) error
	}

	// Publisher forwards decoded operations downstream. Failures never fail a block.
	Publisher interface {
		Publish(ctx context.Context, ops []model.TokenOperation) error
	}

	Retrier interface {
		Do(ctx context.Context, operation string, fn func(ctx context.Context) error) error
	}

	Metrics interface {
		ObserveProcessBatch(err error, heights int, started time.Time)
		ObserveProcessHeight(err error, height uint64, started time.Time)
		ObserveTokenOperation(kind model.OperationKind)
		SetCursor(next uint64, pending int)
		ObservePendingDropped(count int)
	}
)
