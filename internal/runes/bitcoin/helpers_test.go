package bitcoin

import (
	"bytes"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

func p2pkhScript() []byte {
	script := []byte{txscript.OP_DUP, txscript.OP_HASH160, txscript.OP_DATA_20}
	script = append(script, bytes.Repeat([]byte{0x11}, 20)...)
	return append(script, txscript.OP_EQUALVERIFY, txscript.OP_CHECKSIG)
}

func testTx(values ...int64) *wire.MsgTx {
	tx := wire.NewMsgTx(2)
	tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Hash: chainhash.Hash{0xaa}}, []byte{0x51}, nil))
	for _, v := range values {
		tx.AddTxOut(wire.NewTxOut(v, p2pkhScript()))
	}
	return tx
}

func testBlock(txs ...*wire.MsgTx) *wire.MsgBlock {
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    0x20000000,
			PrevBlock:  chainhash.Hash{0x01},
			MerkleRoot: chainhash.Hash{0x02},
			Timestamp:  time.Unix(1700000000, 0),
			Bits:       0x1d00ffff,
			Nonce:      42,
		},
		Transactions: txs,
	}
}
