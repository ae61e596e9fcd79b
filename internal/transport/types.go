package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Reader is the query surface of a runes repository.
	Reader interface {
		BlockByHeight(ctx context.Context, network model.Network, height uint64) (model.Block, bool, error)
		TransactionByID(ctx context.Context, network model.Network, txid string) (model.Transaction, bool, error)
		TokenOperations(ctx context.Context, network model.Network, limit, offset uint64) ([]model.TokenOperation, error)
		Stats(ctx context.Context, network model.Network) (model.Stats, error)
	}
)
