package bitcoin

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"
	"github.com/goodnatureofminers/blockinsight7000-runes/pkg/safe"
)

// outputConverter converts raw tx outputs to domain outputs using a script decoder.
type outputConverter struct {
	decoder ScriptDecoder
	network model.Network
}

// NewOutputConverter constructs a converter for the given network.
func NewOutputConverter(decoder ScriptDecoder, network model.Network) OutputConverter {
	return &outputConverter{decoder: decoder, network: network}
}

func (c *outputConverter) Convert(tx *wire.MsgTx, txid string, blockHeight uint64) ([]model.TransactionOutput, error) {
	outputs := make([]model.TransactionOutput, 0, len(tx.TxOut))
	for idx, out := range tx.TxOut {
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", txid, err)
		}
		value, err := safe.Uint64(out.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d negative value: %w", txid, idx, err)
		}
		scriptType, address := c.decoder.Decode(out.PkScript)

		outputs = append(outputs, model.TransactionOutput{
			Network:     c.network,
			BlockHeight: blockHeight,
			TxID:        txid,
			Index:       index,
			Value:       value,
			ScriptType:  scriptType,
			ScriptHex:   hex.EncodeToString(out.PkScript),
			Address:     address,
		})
	}
	return outputs, nil
}
