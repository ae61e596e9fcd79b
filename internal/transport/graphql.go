package transport

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/pkg/safe"
	graphql "github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

const graphqlSchema = `
schema {
	query: Query
}

scalar Time

type Query {
	block(height: Int!): Block
	transaction(txid: String!): Transaction
	runesTransactions(limit: Int, offset: Int): [RunesTransaction!]!
	stats: Stats!
}

type Block {
	height: Int!
	hash: String!
	prevHash: String!
	timestamp: Time!
	merkleRoot: String!
	version: Int!
	txCount: Int!
	status: String!
}

type Transaction {
	txid: String!
	blockHeight: Int!
	blockHash: String!
	version: Int!
	# uint32 on chain, exceeds Int
	locktime: Float!
	size: Int!
	vsize: Int!
	weight: Int!
	fee: Float
	inputCount: Int!
	outputCount: Int!
	timestamp: Time!
}

type RunesTransaction {
	txid: String!
	blockHeight: Int!
	runeId: String
	operation: String!
	# decimal string of a 128-bit amount
	amount: String
	fromAddress: String
	toAddress: String
	# JSON object
	metadata: String
	timestamp: Time!
}

type Stats {
	lastIndexedBlock: Int
	totalTransactions: Float!
	totalRunesTransactions: Float!
}
`

const graphqlMaxDepth = 6

var errQueryFailed = errors.New("query failed")

func newGraphQLSchema(q *queryResolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(graphqlSchema, q, graphql.MaxDepth(graphqlMaxDepth))
}

type queryResolver struct {
	reader  Reader
	network model.Network
	logger  *zap.Logger
}

func (q *queryResolver) Block(ctx context.Context, args struct{ Height int32 }) (*blockResolver, error) {
	height, err := safe.Uint64(args.Height)
	if err != nil {
		return nil, errors.New("invalid height")
	}
	block, ok, err := q.reader.BlockByHeight(ctx, q.network, height)
	if err != nil {
		q.logger.Error("query block", zap.Uint64("height", height), zap.Error(err))
		return nil, errQueryFailed
	}
	if !ok {
		return nil, nil
	}
	return &blockResolver{b: block}, nil
}

func (q *queryResolver) Transaction(ctx context.Context, args struct{ Txid string }) (*transactionResolver, error) {
	if args.Txid == "" {
		return nil, errors.New("missing txid")
	}
	tx, ok, err := q.reader.TransactionByID(ctx, q.network, args.Txid)
	if err != nil {
		q.logger.Error("query transaction", zap.String("txid", args.Txid), zap.Error(err))
		return nil, errQueryFailed
	}
	if !ok {
		return nil, nil
	}
	return &transactionResolver{tx: tx}, nil
}

func (q *queryResolver) RunesTransactions(ctx context.Context, args struct {
	Limit  *int32
	Offset *int32
}) ([]*operationResolver, error) {
	page := pageSpec{Limit: defaultLimit}
	if args.Limit != nil {
		if *args.Limit <= 0 {
			return nil, errInvalidLimit
		}
		page.Limit = min(uint64(*args.Limit), maxLimit)
	}
	if args.Offset != nil {
		if *args.Offset < 0 {
			return nil, errInvalidOffset
		}
		page.Offset = uint64(*args.Offset)
	}

	ops, err := q.reader.TokenOperations(ctx, q.network, page.Limit, page.Offset)
	if err != nil {
		q.logger.Error("query token operations", zap.Error(err))
		return nil, errQueryFailed
	}
	out := make([]*operationResolver, 0, len(ops))
	for _, op := range ops {
		out = append(out, &operationResolver{op: op})
	}
	return out, nil
}

func (q *queryResolver) Stats(ctx context.Context) (*statsResolver, error) {
	stats, err := q.reader.Stats(ctx, q.network)
	if err != nil {
		q.logger.Error("query stats", zap.Error(err))
		return nil, errQueryFailed
	}
	return &statsResolver{s: stats}, nil
}

type blockResolver struct{ b model.Block }

func (r *blockResolver) Height() (int32, error)  { return safe.Int32(r.b.Height) }
func (r *blockResolver) Hash() string            { return r.b.Hash }
func (r *blockResolver) PrevHash() string        { return r.b.PrevHash }
func (r *blockResolver) Timestamp() graphql.Time { return graphql.Time{Time: r.b.Timestamp} }
func (r *blockResolver) MerkleRoot() string      { return r.b.MerkleRoot }
func (r *blockResolver) Version() int32          { return r.b.Version }
func (r *blockResolver) TxCount() (int32, error) { return safe.Int32(r.b.TXCount) }
func (r *blockResolver) Status() string          { return string(r.b.Status) }

type transactionResolver struct{ tx model.Transaction }

func (r *transactionResolver) TxID() string                { return r.tx.TxID }
func (r *transactionResolver) BlockHeight() (int32, error) { return safe.Int32(r.tx.BlockHeight) }
func (r *transactionResolver) BlockHash() string           { return r.tx.BlockHash }
func (r *transactionResolver) Version() int32              { return r.tx.Version }
func (r *transactionResolver) Locktime() float64           { return float64(r.tx.LockTime) }
func (r *transactionResolver) Size() (int32, error)        { return safe.Int32(r.tx.Size) }
func (r *transactionResolver) Vsize() (int32, error)       { return safe.Int32(r.tx.VSize) }
func (r *transactionResolver) Weight() (int32, error)      { return safe.Int32(r.tx.Weight) }
func (r *transactionResolver) InputCount() (int32, error)  { return safe.Int32(r.tx.InputCount) }
func (r *transactionResolver) OutputCount() (int32, error) { return safe.Int32(r.tx.OutputCount) }
func (r *transactionResolver) Timestamp() graphql.Time     { return graphql.Time{Time: r.tx.Timestamp} }

func (r *transactionResolver) Fee() *float64 {
	if r.tx.Fee == nil {
		return nil
	}
	fee := float64(*r.tx.Fee)
	return &fee
}

type operationResolver struct{ op model.TokenOperation }

func (r *operationResolver) TxID() string                { return r.op.TxID }
func (r *operationResolver) BlockHeight() (int32, error) { return safe.Int32(r.op.BlockHeight) }
func (r *operationResolver) RuneID() *string             { return r.op.RuneID }
func (r *operationResolver) Operation() string           { return string(r.op.Kind) }
func (r *operationResolver) FromAddress() *string        { return r.op.FromAddress }
func (r *operationResolver) ToAddress() *string          { return r.op.ToAddress }
func (r *operationResolver) Timestamp() graphql.Time     { return graphql.Time{Time: r.op.Timestamp} }

func (r *operationResolver) Amount() *string {
	if r.op.Amount == nil {
		return nil
	}
	amount := r.op.Amount.String()
	return &amount
}

func (r *operationResolver) Metadata() (*string, error) {
	raw, err := r.op.MetadataJSON()
	if err != nil || raw == nil {
		return nil, err
	}
	metadata := string(raw)
	return &metadata, nil
}

type statsResolver struct{ s model.Stats }

func (r *statsResolver) LastIndexedBlock() (*int32, error) {
	if r.s.LastIndexedBlock == nil {
		return nil, nil
	}
	height, err := safe.Int32(*r.s.LastIndexedBlock)
	if err != nil {
		return nil, err
	}
	return &height, nil
}

func (r *statsResolver) TotalTransactions() float64 { return float64(r.s.TotalTransactions) }

func (r *statsResolver) TotalRunesTransactions() float64 {
	return float64(r.s.TotalTokenOperations)
}
