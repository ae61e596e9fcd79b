package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/pkg/safe"
)

// BuildBlock maps a raw block header into a model.Block with status.
func BuildBlock(src *wire.MsgBlock, height uint64, network model.Network, status model.BlockStatus) (model.Block, error) {
	size, err := safe.Uint32(src.SerializeSize())
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d size overflow: %w", height, err)
	}
	txCount, err := safe.Uint32(len(src.Transactions))
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d tx count overflow: %w", height, err)
	}

	return model.Block{
		Network:    network,
		Height:     height,
		Hash:       src.BlockHash().String(),
		PrevHash:   src.Header.PrevBlock.String(),
		Timestamp:  src.Header.Timestamp.UTC(),
		MerkleRoot: src.Header.MerkleRoot.String(),
		Version:    src.Header.Version,
		Bits:       src.Header.Bits,
		Nonce:      src.Header.Nonce,
		Size:       size,
		TXCount:    txCount,
		Status:     status,
	}, nil
}

// BuildTransaction maps a raw transaction into a model.Transaction inheriting block context.
// Fee stays empty since prevouts are not resolved.
func BuildTransaction(tx *wire.MsgTx, block model.Block) (model.Transaction, error) {
	txid := tx.TxHash().String()

	size, err := safe.Uint32(tx.SerializeSize())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s size overflow: %w", txid, err)
	}
	weight, err := safe.Uint32(blockchain.GetTransactionWeight(btcutil.NewTx(tx)))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s weight overflow: %w", txid, err)
	}
	inputCount, err := safe.Uint32(len(tx.TxIn))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s vin count overflow: %w", txid, err)
	}
	outputCount, err := safe.Uint32(len(tx.TxOut))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s vout count overflow: %w", txid, err)
	}

	return model.Transaction{
		Network:     block.Network,
		TxID:        txid,
		BlockHeight: block.Height,
		BlockHash:   block.Hash,
		Version:     tx.Version,
		LockTime:    tx.LockTime,
		Size:        size,
		VSize:       (weight + blockchain.WitnessScaleFactor - 1) / blockchain.WitnessScaleFactor,
		Weight:      weight,
		InputCount:  inputCount,
		OutputCount: outputCount,
		Timestamp:   block.Timestamp,
	}, nil
}
