// Package metrics holds prometheus collectors for runes ingestion components.
package metrics

import "github.com/goodnatureofminers/blockinsight7000-runes/internal/runes/model"

const (
	namespace = "runes"

	statusSuccess = "success"
	statusError   = "error"
)

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusSuccess
}

func networkLabel(network model.Network) string {
	if network == "" {
		return "unknown"
	}
	return string(network)
}
