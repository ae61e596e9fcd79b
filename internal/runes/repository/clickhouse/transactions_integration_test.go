package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"lukechampine.com/uint128"
)

func (s *RepositorySuite) TestInsertTransactionsIsIdempotent() {
	now := time.Now().UTC().Truncate(time.Second)
	txs := []model.Transaction{
		newTransaction("tx-1", 1, now),
		newTransaction("tx-2", 1, now),
	}

	s.metrics.EXPECT().Observe("insert_transactions", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("transaction_by_id", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.InsertTransactions(s.testCtx, txs))
	s.Require().NoError(s.repo.InsertTransactions(s.testCtx, txs))
	s.Equal(uint64(2), s.countRows("runes_transactions"))

	got, ok, err := s.repo.TransactionByID(s.testCtx, model.Mainnet, "tx-2")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(txs[1], got)

	_, ok, err = s.repo.TransactionByID(s.testCtx, model.Mainnet, "missing")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RepositorySuite) TestInsertTransactionOutputsIsIdempotent() {
	address := "bc1qexample"
	outputs := []model.TransactionOutput{
		{Network: model.Mainnet, BlockHeight: 1, TxID: "tx-1", Index: 0, Value: 546, ScriptType: "witness_v0_keyhash", ScriptHex: "0014", Address: &address},
		{Network: model.Mainnet, BlockHeight: 1, TxID: "tx-1", Index: 1, Value: 0, ScriptType: "nulldata", ScriptHex: "6a"},
	}

	s.metrics.EXPECT().Observe("insert_transaction_outputs", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)

	s.Require().NoError(s.repo.InsertTransactionOutputs(s.testCtx, outputs))
	s.Require().NoError(s.repo.InsertTransactionOutputs(s.testCtx, outputs))
	s.Equal(uint64(2), s.countRows("runes_transaction_outputs"))
}

func (s *RepositorySuite) TestTokenOperationsNewestFirst() {
	base := time.Now().UTC().Truncate(time.Second)
	runeID := "RUNE_0102030405060708"
	amount := uint128.New(5, 1)

	older := model.TokenOperation{
		Network:     model.Mainnet,
		TxID:        "tx-old",
		BlockHeight: 1,
		RuneID:      &runeID,
		Kind:        model.OperationEtch,
		Metadata:    &model.EtchMetadata{Symbol: "RUNE", Decimals: 8},
		Timestamp:   base,
	}
	newer := model.TokenOperation{
		Network:     model.Mainnet,
		TxID:        "tx-new",
		BlockHeight: 2,
		RuneID:      &runeID,
		Kind:        model.OperationTransfer,
		Amount:      &amount,
		Timestamp:   base.Add(time.Minute),
	}

	s.metrics.EXPECT().Observe("insert_token_operations", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("token_operations", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)

	ops := []model.TokenOperation{older, newer}
	s.Require().NoError(s.repo.InsertTokenOperations(s.testCtx, ops))
	s.Require().NoError(s.repo.InsertTokenOperations(s.testCtx, ops))

	got, err := s.repo.TokenOperations(s.testCtx, model.Mainnet, 10, 0)
	s.Require().NoError(err)
	s.Equal([]model.TokenOperation{newer, older}, got)

	page, err := s.repo.TokenOperations(s.testCtx, model.Mainnet, 1, 1)
	s.Require().NoError(err)
	s.Equal([]model.TokenOperation{older}, page)
}

func (s *RepositorySuite) TestStats() {
	now := time.Now().UTC().Truncate(time.Second)

	s.metrics.EXPECT().Observe("stats", model.Mainnet, gomock.Nil(), gomock.Any()).Times(2)
	s.metrics.EXPECT().Observe("insert_blocks", model.Mainnet, gomock.Nil(), gomock.Any())
	s.metrics.EXPECT().Observe("insert_transactions", model.Mainnet, gomock.Nil(), gomock.Any())
	s.metrics.EXPECT().Observe("insert_token_operations", model.Mainnet, gomock.Nil(), gomock.Any())

	empty, err := s.repo.Stats(s.testCtx, model.Mainnet)
	s.Require().NoError(err)
	s.Nil(empty.LastIndexedBlock)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, []model.Block{
		newBlock(model.BlockProcessed, 3, "a", now),
		newBlock(model.BlockUnprocessed, 4, "b", now),
	}))
	s.Require().NoError(s.repo.InsertTransactions(s.testCtx, []model.Transaction{
		newTransaction("tx-1", 3, now),
		newTransaction("tx-2", 3, now),
	}))
	s.Require().NoError(s.repo.InsertTokenOperations(s.testCtx, []model.TokenOperation{
		{Network: model.Mainnet, TxID: "tx-1", BlockHeight: 3, Kind: model.OperationBurn, Timestamp: now},
	}))

	stats, err := s.repo.Stats(s.testCtx, model.Mainnet)
	s.Require().NoError(err)
	s.Require().NotNil(stats.LastIndexedBlock)
	s.Equal(uint64(3), *stats.LastIndexedBlock)
	s.Equal(uint64(2), stats.TotalTransactions)
	s.Equal(uint64(1), stats.TotalTokenOperations)
}
