package protocol

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"lukechampine.com/uint128"
)

const (
	opEtch     byte = 0x00
	opMint     byte = 0x01
	opTransfer byte = 0x02
	opBurn     byte = 0x03

	runeIDPrefix = "RUNE_"

	etchSymbol   = "RUNE"
	etchDecimals = 8
)

// DecodePayload interprets the bytes following the marker. The returned
// operation carries only the fields derived from the payload.
func DecodePayload(payload []byte) (model.TokenOperation, bool) {
	if len(payload) == 0 {
		return model.TokenOperation{}, false
	}

	switch payload[0] {
	case opEtch:
		if len(payload) < 9 {
			return model.TokenOperation{}, false
		}
		runeID := runeIDPrefix + hex.EncodeToString(payload[1:9])
		return model.TokenOperation{
			Kind:   model.OperationEtch,
			RuneID: &runeID,
			Metadata: &model.EtchMetadata{
				Symbol:   etchSymbol,
				Decimals: etchDecimals,
			},
		}, true
	case opMint:
		return decodeAmountPayload(model.OperationMint, payload)
	case opTransfer:
		return decodeAmountPayload(model.OperationTransfer, payload)
	case opBurn:
		return decodeAmountPayload(model.OperationBurn, payload)
	default:
		return model.TokenOperation{}, false
	}
}

// decodeAmountPayload reads [op][amount u64 LE][rune id 8 bytes].
func decodeAmountPayload(kind model.OperationKind, payload []byte) (model.TokenOperation, bool) {
	if len(payload) < 17 {
		return model.TokenOperation{}, false
	}
	amount := uint128.From64(binary.LittleEndian.Uint64(payload[1:9]))
	runeID := runeIDPrefix + hex.EncodeToString(payload[9:17])
	return model.TokenOperation{
		Kind:   kind,
		RuneID: &runeID,
		Amount: &amount,
	}, true
}
