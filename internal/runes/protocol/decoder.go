// Package protocol decodes runes operations embedded in transactions.
package protocol

import (
	"bytes"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
)

// Marker prefixes every runes payload.
var Marker = []byte("RUNE")

// Decode returns the runes operation carried by tx, if any. Outputs are
// scanned first; witness data is inspected only when no output matched.
// The returned operation has TxID set; block context is left to the caller.
func Decode(tx *wire.MsgTx) (model.TokenOperation, bool) {
	if tx == nil {
		return model.TokenOperation{}, false
	}

	op, ok := decodeOutputs(tx.TxOut)
	if !ok && hasWitness(tx.TxIn) {
		op, ok = decodeWitness(tx.TxIn)
	}
	if !ok {
		return model.TokenOperation{}, false
	}
	op.TxID = tx.TxHash().String()
	return op, true
}

func decodeOutputs(outputs []*wire.TxOut) (model.TokenOperation, bool) {
	for _, out := range outputs {
		if out == nil {
			continue
		}
		payload, ok := NullDataPayload(out.PkScript)
		if !ok || !bytes.HasPrefix(payload, Marker) {
			continue
		}
		// a marked output that does not decode leaves later outputs eligible
		if op, ok := DecodePayload(payload[len(Marker):]); ok {
			return op, true
		}
	}
	return model.TokenOperation{}, false
}

func decodeWitness(inputs []*wire.TxIn) (model.TokenOperation, bool) {
	for _, in := range inputs {
		if in == nil {
			continue
		}
		for _, element := range in.Witness {
			if bytes.HasPrefix(element, Marker) {
				return DecodePayload(element[len(Marker):])
			}
		}
	}
	return model.TokenOperation{}, false
}

func hasWitness(inputs []*wire.TxIn) bool {
	for _, in := range inputs {
		if in != nil && len(in.Witness) > 0 {
			return true
		}
	}
	return false
}

// NullDataPayload returns every byte after OP_RETURN and the length header of
// the push that follows it. The declared push length is not enforced, so
// truncated pushes and trailing pushes stay part of the payload.
func NullDataPayload(script []byte) ([]byte, bool) {
	if len(script) < 2 || script[0] != txscript.OP_RETURN {
		return nil, false
	}
	header, ok := pushHeaderLen(script[1])
	if !ok || len(script) < 1+header {
		return nil, false
	}
	return script[1+header:], true
}

// pushHeaderLen is the size of a push opcode plus its length prefix.
func pushHeaderLen(opcode byte) (int, bool) {
	switch {
	case opcode <= txscript.OP_DATA_75:
		return 1, true
	case opcode == txscript.OP_PUSHDATA1:
		return 2, true
	case opcode == txscript.OP_PUSHDATA2:
		return 3, true
	case opcode == txscript.OP_PUSHDATA4:
		return 5, true
	default:
		return 0, false
	}
}
